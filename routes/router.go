package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/config"
	"github.com/woorifc/kickmate/internal/auth"
	"github.com/woorifc/kickmate/internal/friend"
	"github.com/woorifc/kickmate/internal/match"
	"github.com/woorifc/kickmate/internal/team"
	"github.com/woorifc/kickmate/internal/user"
	"github.com/woorifc/kickmate/internal/venue"
)

// SetupRoutes builds the gin engine with every domain's routes mounted
// under /api.
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	jwtSecret := cfg.JWT.AccessTokenSecret

	auth.RegisterAuthRoutes(api, db, cfg)
	user.RegisterUserRoutes(api, db, jwtSecret)
	team.RegisterTeamRoutes(api, db, jwtSecret)
	match.RegisterMatchRoutes(api, db, jwtSecret)
	venue.RegisterVenueRoutes(api, db, jwtSecret)
	friend.RegisterFriendRoutes(api, db, jwtSecret)

	return r
}
