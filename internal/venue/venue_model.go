package venue

import (
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/user"
)

// Venue is a bookable football ground.
type Venue struct {
	gorm.Model
	Name         string  `json:"name" gorm:"not null;index"`
	Address      string  `json:"address" gorm:"not null"`
	Region       string  `json:"region" gorm:"default:'seoul';index"`
	Description  string  `json:"description" gorm:"type:text"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PricePerHour int     `json:"price_per_hour" gorm:"default:0"`
	Indoor       bool    `json:"indoor" gorm:"default:false"`
	Parking      bool    `json:"parking" gorm:"default:false"`
	ShowerRoom   bool    `json:"shower_room" gorm:"default:false"`

	Images  []VenueImage  `json:"images,omitempty" gorm:"foreignKey:VenueID"`
	Reviews []VenueReview `json:"reviews,omitempty" gorm:"foreignKey:VenueID"`
}

// AverageRating computes the mean review rating, zero when unreviewed.
func (v *Venue) AverageRating() float64 {
	if len(v.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range v.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(v.Reviews))
}

type VenueImage struct {
	gorm.Model
	VenueID uint   `json:"venue_id" gorm:"index;not null"`
	URL     string `json:"url" gorm:"not null"`
	Caption string `json:"caption"`
}

// VenueReview is a user's rating of a venue. One review per (venue, user).
type VenueReview struct {
	gorm.Model
	VenueID uint      `json:"venue_id" gorm:"not null;uniqueIndex:idx_venue_review"`
	UserID  uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_venue_review"`
	User    user.User `json:"user" gorm:"foreignKey:UserID"`
	Rating  int       `json:"rating" gorm:"not null"`
	Comment string    `json:"comment" gorm:"type:text"`
}
