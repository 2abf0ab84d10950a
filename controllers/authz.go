package controllers

// Action names a guarded operation.
type Action string

const (
	ActionCreatePost     Action = "post.create"
	ActionEditPost       Action = "post.edit"
	ActionDeletePost     Action = "post.delete"
	ActionCreateComment  Action = "comment.create"
	ActionFollowAuthor   Action = "follow.create"
	ActionUnfollowAuthor Action = "follow.delete"
)

// authzInput carries the identity and resource facts a rule may consult.
// UserID is zero for anonymous requests.
type authzInput struct {
	UserID   uint
	IsAdmin  bool
	OwnerID  uint // owning author of the post, when relevant
	TargetID uint // target user for follow actions
}

// authzRules is the single decision table every handler consults. Ownership
// checks live here and nowhere else, so routes cannot drift apart.
var authzRules = map[Action]func(in authzInput) bool{
	ActionCreatePost:    func(in authzInput) bool { return in.UserID != 0 },
	ActionCreateComment: func(in authzInput) bool { return in.UserID != 0 },
	ActionEditPost: func(in authzInput) bool {
		return in.UserID != 0 && in.UserID == in.OwnerID
	},
	ActionDeletePost: func(in authzInput) bool {
		return in.UserID != 0 && (in.UserID == in.OwnerID || in.IsAdmin)
	},
	ActionFollowAuthor: func(in authzInput) bool {
		return in.UserID != 0 && in.UserID != in.TargetID
	},
	ActionUnfollowAuthor: func(in authzInput) bool { return in.UserID != 0 },
}

func canPerform(action Action, in authzInput) bool {
	rule, ok := authzRules[action]
	if !ok {
		return false
	}
	return rule(in)
}
