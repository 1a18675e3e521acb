package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Murshi404/Online-store-Project/auth"
)

// SetupAuthRoutes registers the public signup/login endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
	}
}
