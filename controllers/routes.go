package controllers

import (
	"Blogram/middlewares"
)

func (s *Server) initializeRoutes() {
	optional := middlewares.OptionalAuthMiddleware(s.DB)
	required := middlewares.LoginRequiredMiddleware(s.DB)

	// Public listings
	s.Router.GET("/", s.Home)
	s.Router.GET("/group/:slug/", s.GetGroupPosts)
	s.Router.GET("/profile/:username/", optional, s.GetProfile)
	s.Router.GET("/posts/:id/", s.GetPost)

	// Authoring
	s.Router.GET("/create/", required, s.NewPostForm)
	s.Router.POST("/create/", required, s.CreatePost)
	s.Router.GET("/posts/:id/edit/", required, s.EditPostForm)
	s.Router.POST("/posts/:id/edit/", required, s.EditPost)
	s.Router.POST("/posts/:id/delete/", required, s.DeletePost)
	s.Router.POST("/posts/:id/comment/", required, s.AddComment)

	// Follow graph
	s.Router.GET("/follow/", required, s.FollowIndex)
	s.Router.POST("/profile/:username/follow/", required, s.ProfileFollow)
	s.Router.POST("/profile/:username/unfollow/", required, s.ProfileUnfollow)

	// Identity
	auth := s.Router.Group("/auth", middlewares.AuthRateLimitMiddleware())
	auth.POST("/signup/", s.Signup)
	auth.GET("/login/", s.LoginForm)
	auth.POST("/login/", s.Login)

	// Operational endpoints, admin only
	internal := s.Router.Group("/internal", required, middlewares.AdminOnlyMiddleware())
	internal.POST("/cache/clear/", s.ClearResponseCache)
	internal.POST("/groups/", s.CreateGroup)
	internal.DELETE("/groups/:slug/", s.DeleteGroup)
	internal.DELETE("/users/:username/", s.DeleteUser)
}
