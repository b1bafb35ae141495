package main

import (
	"log"

	"github.com/woorifc/kickmate/config"
	_ "github.com/woorifc/kickmate/docs"
	"github.com/woorifc/kickmate/internal/friend"
	"github.com/woorifc/kickmate/internal/match"
	"github.com/woorifc/kickmate/internal/team"
	"github.com/woorifc/kickmate/internal/user"
	"github.com/woorifc/kickmate/internal/venue"
	"github.com/woorifc/kickmate/routes"
)

// @title KickMate REST API
// @version 1.0
// @description Backend for amateur football matches, teams and venues.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&team.Team{}, &team.TeamMember{}, &team.TeamJoinRequest{},
		&venue.Venue{}, &venue.VenueImage{}, &venue.VenueReview{},
		&match.Match{}, &match.MatchParticipant{}, &match.MatchResult{},
		&friend.Friendship{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Uniqueness for join requests is scoped to the pending state so a user
	// can re-request after a rejection. AutoMigrate cannot express a partial
	// index, hence the raw statement.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_join_request
		ON team_join_requests (team_id, user_id)
		WHERE status = 'PENDING' AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatalf("Failed to create pending join request index: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
