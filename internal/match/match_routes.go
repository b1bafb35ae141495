package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/middleware"
)

// RegisterMatchRoutes wires the match, participation and result endpoints.
func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewMatchRepository(db)
	service := NewMatchService(repo)
	controller := NewMatchController(repo, service)

	// Public routes
	router.GET("/matches", controller.GetAllMatches)
	router.GET("/matches/:match_id", controller.GetMatchByID)
	router.GET("/matches/:match_id/participants", controller.ListParticipants)
	router.GET("/matches/:match_id/result", controller.GetResult)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authed.POST("/matches", controller.CreateMatch)
		authed.PUT("/matches/:match_id", controller.UpdateMatch)
		authed.DELETE("/matches/:match_id", controller.DeleteMatch)
		authed.POST("/matches/:match_id/cancel", controller.CancelMatch)

		authed.GET("/me/matches", controller.GetMyMatches)

		authed.POST("/matches/:match_id/join", controller.JoinMatch)
		authed.POST("/matches/:match_id/leave", controller.LeaveMatch)
		authed.POST("/matches/:match_id/attendance", controller.MarkAttendance)

		authed.POST("/matches/:match_id/result", controller.RecordResult)
	}
}
