package venue

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/middleware"
)

// RegisterVenueRoutes wires the venue and review endpoints.
func RegisterVenueRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewVenueRepository(db)
	controller := NewVenueController(repo)

	// Public routes
	router.GET("/venues", controller.GetAllVenues)
	router.GET("/venues/:venue_id", controller.GetVenueByID)
	router.GET("/venues/:venue_id/reviews", controller.GetReviews)

	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authed.POST("/venues", controller.CreateVenue)
		authed.PUT("/venues/:venue_id", controller.UpdateVenue)
		authed.DELETE("/venues/:venue_id", controller.DeleteVenue)

		authed.POST("/venues/:venue_id/reviews", controller.CreateReview)
		authed.PUT("/venues/:venue_id/reviews/:review_id", controller.UpdateReview)
		authed.DELETE("/venues/:venue_id/reviews/:review_id", controller.DeleteReview)
	}
}
