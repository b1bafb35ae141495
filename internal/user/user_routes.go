package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/middleware"
)

// RegisterUserRoutes wires the profile endpoints.
func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authed.GET("/me", controller.GetMe)
		authed.PUT("/me", controller.UpdateMe)
		authed.POST("/me/password", controller.ChangePassword)
		authed.GET("/users/:username", controller.GetByUsername)
	}
}
