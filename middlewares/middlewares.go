package middlewares

import (
	"net/url"
	"os"
	"strings"

	"Blogram/auth"
	"Blogram/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginRequiredMiddleware guards page routes that need an authenticated
// identity. Anonymous requests are not an error: they bounce to the login
// page with a next parameter pointing back at the originating path.
func LoginRequiredMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			redirectToLogin(c)
			return
		}

		var user models.User
		if err := db.Select("id", "is_admin").First(&user, userID).Error; err != nil {
			redirectToLogin(c)
			return
		}

		c.Set("userID", userID)
		c.Set("isAdmin", user.IsAdmin)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a valid token is present
// and leaves the request anonymous otherwise. Used on public listings that
// vary with the viewer (profile follow status).
func OptionalAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Select("id", "is_admin").First(&user, userID).Error; err != nil {
			c.Next()
			return
		}

		c.Set("userID", userID)
		c.Set("isAdmin", user.IsAdmin)
		c.Next()
	}
}

// AdminOnlyMiddleware ensures the request is authenticated and belongs to an
// admin user. Runs behind LoginRequiredMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, _ := c.Get("isAdmin")
		if adminFlag, ok := isAdmin.(bool); ok && adminFlag {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(403, gin.H{"error": "Forbidden"})
	}
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.RequestURI()
	c.Redirect(302, "/auth/login/?next="+url.QueryEscape(next))
	c.Abort()
}

// CORSMiddleware allows browser clients from the configured origins.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowedOrigins := []string{"http://localhost:3000"}
		if extra := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); extra != "" {
			for _, o := range strings.Split(extra, ",") {
				if trimmed := strings.TrimSpace(o); trimmed != "" {
					allowedOrigins = append(allowedOrigins, trimmed)
				}
			}
		}

		for _, o := range allowedOrigins {
			if o == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", o)
				break
			}
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
