package team

import (
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/user"
)

type TeamLevel string

const (
	LevelBeginner     TeamLevel = "BEG"
	LevelIntermediate TeamLevel = "INT"
	LevelAdvanced     TeamLevel = "ADV"
	LevelPro          TeamLevel = "PRO"
)

type MemberRole string

const (
	RoleCaptain MemberRole = "CAPTAIN"
	RoleManager MemberRole = "MANAGER"
	RolePlayer  MemberRole = "PLAYER"
)

type Position string

const (
	PositionGK Position = "GK"
	PositionDF Position = "DF"
	PositionMF Position = "MF"
	PositionFW Position = "FW"
)

type JoinRequestStatus string

const (
	RequestPending  JoinRequestStatus = "PENDING"
	RequestAccepted JoinRequestStatus = "ACCEPTED"
	RequestRejected JoinRequestStatus = "REJECTED"
)

// Team is an amateur football club. The owner is set at creation and never
// changes; the owner always holds a CAPTAIN membership row.
type Team struct {
	gorm.Model
	Name         string    `json:"name" gorm:"not null"`
	Logo         string    `json:"logo"`
	Description  string    `json:"description" gorm:"type:text"`
	Level        TeamLevel `json:"level" gorm:"type:varchar(3);default:'BEG'"`
	Region       string    `json:"region" gorm:"default:'seoul'"`
	IsRecruiting bool      `json:"is_recruiting" gorm:"default:true"`
	Rating       float64   `json:"rating" gorm:"default:1000"`
	OwnerID      uint      `json:"owner_id" gorm:"index;not null"`
	Owner        user.User `json:"owner" gorm:"foreignKey:OwnerID"`

	MatchesPlayed int `json:"matches_played" gorm:"default:0"`
	Wins          int `json:"wins" gorm:"default:0"`
	Draws         int `json:"draws" gorm:"default:0"`
	Losses        int `json:"losses" gorm:"default:0"`
	GoalsScored   int `json:"goals_scored" gorm:"default:0"`
	GoalsConceded int `json:"goals_conceded" gorm:"default:0"`
}

// WinRate returns the team's win percentage over played matches.
func (t *Team) WinRate() float64 {
	if t.MatchesPlayed == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.MatchesPlayed) * 100
}

// GoalDifference returns goals scored minus goals conceded.
func (t *Team) GoalDifference() int {
	return t.GoalsScored - t.GoalsConceded
}

// TeamMember links a user to a team. One membership per (team, user).
type TeamMember struct {
	gorm.Model
	TeamID   uint       `json:"team_id" gorm:"not null;uniqueIndex:idx_team_member"`
	UserID   uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_team_member"`
	User     user.User  `json:"user" gorm:"foreignKey:UserID"`
	Role     MemberRole `json:"role" gorm:"type:varchar(10);default:'PLAYER'"`
	Position *Position  `json:"position,omitempty" gorm:"type:varchar(2)"`
}

// TeamJoinRequest is a user's pending proposal to join a team. Uniqueness is
// scoped to the PENDING status (partial index created at migration time) so a
// user can re-request after a rejection or after leaving the team.
type TeamJoinRequest struct {
	gorm.Model
	TeamID   uint              `json:"team_id" gorm:"index;not null"`
	UserID   uint              `json:"user_id" gorm:"index;not null"`
	User     user.User         `json:"user" gorm:"foreignKey:UserID"`
	Message  string            `json:"message" gorm:"type:text"`
	Position *Position         `json:"position,omitempty" gorm:"type:varchar(2)"`
	Status   JoinRequestStatus `json:"status" gorm:"type:varchar(10);default:'PENDING';index"`
}
