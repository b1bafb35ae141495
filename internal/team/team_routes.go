package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/middleware"
)

// RegisterTeamRoutes wires the team, membership and join-request endpoints.
func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewTeamRepository(db)
	service := NewTeamService(repo)
	controller := NewTeamController(repo, service)

	// Public routes
	router.GET("/teams", controller.GetAllTeams)
	router.GET("/teams/:team_id", controller.GetTeamByID)
	router.GET("/teams/:team_id/members", controller.GetTeamMembers)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authed.POST("/teams", controller.CreateTeam)
		authed.PUT("/teams/:team_id", controller.UpdateTeam)
		authed.DELETE("/teams/:team_id", controller.DeleteTeam)

		authed.GET("/me/teams", controller.GetMyTeams)
		authed.GET("/me/join-requests", controller.GetMyJoinRequests)

		authed.DELETE("/teams/:team_id/members/:member_id", controller.RemoveMember)
		authed.PUT("/teams/:team_id/members/:member_id/role", controller.UpdateMemberRole)
		authed.POST("/teams/:team_id/leave", controller.LeaveTeam)

		authed.POST("/teams/:team_id/join-requests", controller.RequestToJoin)
		authed.GET("/teams/:team_id/join-requests", controller.ListJoinRequests)
		authed.DELETE("/teams/:team_id/join-requests", controller.CancelJoinRequest)
		authed.POST("/teams/:team_id/join-requests/:request_id/accept", controller.AcceptJoinRequest)
		authed.POST("/teams/:team_id/join-requests/:request_id/reject", controller.RejectJoinRequest)
	}
}
