package friend

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/middleware"
)

// RegisterFriendRoutes wires the friendship endpoints. All require auth.
func RegisterFriendRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewFriendRepository(db)
	service := NewFriendService(repo)
	controller := NewFriendController(service)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authed.GET("/friends", controller.ListFriends)
		authed.DELETE("/friendships/:friendship_id", controller.DeleteFriendship)

		authed.POST("/friends/requests", controller.SendRequest)
		authed.GET("/friends/requests/incoming", controller.ListIncoming)
		authed.GET("/friends/requests/outgoing", controller.ListOutgoing)
		authed.POST("/friends/requests/:request_id/accept", controller.AcceptRequest)
		authed.POST("/friends/requests/:request_id/reject", controller.RejectRequest)
		authed.DELETE("/friends/requests/:request_id", controller.CancelRequest)
	}
}
