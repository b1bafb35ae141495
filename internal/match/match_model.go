package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/team"
	"github.com/woorifc/kickmate/internal/user"
	"github.com/woorifc/kickmate/internal/venue"
)

type MatchStatus string

const (
	StatusOpen      MatchStatus = "OPEN"
	StatusClosed    MatchStatus = "CLOSED"
	StatusCanceled  MatchStatus = "CANCELED"
	StatusCompleted MatchStatus = "COMPLETED"
)

type ParticipantStatus string

const (
	ParticipantRegistered ParticipantStatus = "REGISTERED"
	ParticipantCanceled   ParticipantStatus = "CANCELED"
	ParticipantAttended   ParticipantStatus = "ATTENDED"
	ParticipantNoShow     ParticipantStatus = "NOSHOW"
)

type GenderPolicy string

const (
	GenderMale   GenderPolicy = "MALE"
	GenderFemale GenderPolicy = "FEMALE"
	GenderMixed  GenderPolicy = "MIXED"
)

// Match is a pickup or team game at a venue. The host is set at creation and
// never changes. Start and end times are clock strings ("15:04") combined
// with Date when a concrete instant is needed.
type Match struct {
	gorm.Model
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	VenueID     uint        `json:"venue_id" gorm:"index;not null"`
	Venue       venue.Venue `json:"venue" gorm:"foreignKey:VenueID"`
	Date        time.Time   `json:"date" gorm:"type:date;not null;index"`
	StartTime   string      `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime     string      `json:"end_time" gorm:"type:varchar(5);not null"`

	Status         MatchStatus     `json:"status" gorm:"type:varchar(10);default:'OPEN';index"`
	MaxPlayers     int             `json:"max_players" gorm:"not null"`
	SkillLevel     user.SkillLevel `json:"skill_level" gorm:"type:varchar(3);default:'BEG'"`
	Gender         GenderPolicy    `json:"gender" gorm:"type:varchar(6);default:'MIXED'"`
	PricePerPlayer int             `json:"price_per_player" gorm:"default:0"`

	HostID uint      `json:"host_id" gorm:"index;not null"`
	Host   user.User `json:"host" gorm:"foreignKey:HostID"`

	HomeTeamID *uint      `json:"home_team_id,omitempty"`
	HomeTeam   *team.Team `json:"home_team,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayTeamID *uint      `json:"away_team_id,omitempty"`
	AwayTeam   *team.Team `json:"away_team,omitempty" gorm:"foreignKey:AwayTeamID"`

	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`
}

// EndsAt combines Date and EndTime into the instant the match finishes.
// An unparseable EndTime counts as end of day.
func (m *Match) EndsAt() time.Time {
	clock, err := time.Parse("15:04", m.EndTime)
	if err != nil {
		return time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 23, 59, 59, 0, m.Date.Location())
	}
	return time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, m.Date.Location())
}

// IsPast reports whether the match has already finished at the given time.
func (m *Match) IsPast(now time.Time) bool {
	return now.After(m.EndsAt())
}

// IsFull reports whether the given active participant count fills the match.
func (m *Match) IsFull(activeCount int64) bool {
	return activeCount >= int64(m.MaxPlayers)
}

// AvailableSpots returns the remaining capacity, never negative.
func (m *Match) AvailableSpots(activeCount int64) int {
	spots := m.MaxPlayers - int(activeCount)
	if spots < 0 {
		return 0
	}
	return spots
}

// MatchParticipant links a user to a match. One row per (match, user); a
// cancellation keeps the row and re-joining flips it back to REGISTERED.
type MatchParticipant struct {
	gorm.Model
	MatchID uint              `json:"match_id" gorm:"not null;uniqueIndex:idx_match_participant"`
	UserID  uint              `json:"user_id" gorm:"not null;uniqueIndex:idx_match_participant"`
	User    user.User         `json:"user" gorm:"foreignKey:UserID"`
	TeamID  *uint             `json:"team_id,omitempty"`
	Status  ParticipantStatus `json:"status" gorm:"type:varchar(10);default:'REGISTERED';index"`
	HasPaid bool              `json:"has_paid" gorm:"default:false"`
}

// IsActive reports whether the row occupies a slot.
func (p *MatchParticipant) IsActive() bool {
	return p.Status != ParticipantCanceled
}

// MatchResult stores the final score for a completed match. One per match.
type MatchResult struct {
	gorm.Model
	MatchID   uint       `json:"match_id" gorm:"not null;uniqueIndex"`
	HomeScore int        `json:"home_score" gorm:"not null"`
	AwayScore int        `json:"away_score" gorm:"not null"`
	MVPID     *uint      `json:"mvp_id,omitempty"`
	MVP       *user.User `json:"mvp,omitempty" gorm:"foreignKey:MVPID"`
	Summary   string     `json:"summary" gorm:"type:text"`
}
