package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/config"
)

// RegisterAuthRoutes wires the public authentication endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, cfg)

	auth := router.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.Refresh)
		auth.POST("/logout", controller.Logout)
	}
}
