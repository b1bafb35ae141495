package venue

import (
	"errors"

	"gorm.io/gorm"
)

// VenueRepository defines the interface for venue data operations. Lookups
// return (nil, nil) when the row does not exist.
type VenueRepository interface {
	CreateVenue(v *Venue) error
	GetVenueByID(id uint) (*Venue, error)
	GetAllVenues(page, limit int, filters map[string]interface{}) ([]Venue, int64, error)
	UpdateVenue(v *Venue) error
	DeleteVenue(id uint) error

	AddImage(img *VenueImage) error
	DeleteImage(id uint) error

	CreateReview(r *VenueReview) error
	GetReview(venueID, userID uint) (*VenueReview, error)
	GetReviewByID(id uint) (*VenueReview, error)
	GetReviews(venueID uint) ([]VenueReview, error)
	UpdateReview(r *VenueReview) error
	DeleteReview(id uint) error
}

type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a gorm-backed VenueRepository.
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) CreateVenue(v *Venue) error {
	return r.db.Create(v).Error
}

func (r *venueRepository) GetVenueByID(id uint) (*Venue, error) {
	var v Venue
	err := r.db.Preload("Images").Preload("Reviews").Preload("Reviews.User").First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *venueRepository) GetAllVenues(page, limit int, filters map[string]interface{}) ([]Venue, int64, error) {
	var venues []Venue
	var total int64

	query := r.db.Model(&Venue{})
	if region, ok := filters["region"]; ok {
		query = query.Where("region = ?", region)
	}
	if indoor, ok := filters["indoor"]; ok {
		query = query.Where("indoor = ?", indoor)
	}
	if name, ok := filters["name"]; ok {
		query = query.Where("name ILIKE ?", "%"+name.(string)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Images").Offset(offset).Limit(limit).Order("name asc").Find(&venues).Error; err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *venueRepository) UpdateVenue(v *Venue) error {
	return r.db.Save(v).Error
}

// DeleteVenue removes the venue with its images and reviews.
func (r *venueRepository) DeleteVenue(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", id).Delete(&VenueImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&VenueReview{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Venue{}, id).Error
	})
}

func (r *venueRepository) AddImage(img *VenueImage) error {
	return r.db.Create(img).Error
}

func (r *venueRepository) DeleteImage(id uint) error {
	return r.db.Delete(&VenueImage{}, id).Error
}

func (r *venueRepository) CreateReview(review *VenueReview) error {
	return r.db.Create(review).Error
}

func (r *venueRepository) GetReview(venueID, userID uint) (*VenueReview, error) {
	var review VenueReview
	err := r.db.Where("venue_id = ? AND user_id = ?", venueID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *venueRepository) GetReviewByID(id uint) (*VenueReview, error) {
	var review VenueReview
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *venueRepository) GetReviews(venueID uint) ([]VenueReview, error) {
	var reviews []VenueReview
	err := r.db.Preload("User").
		Where("venue_id = ?", venueID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *venueRepository) UpdateReview(review *VenueReview) error {
	return r.db.Save(review).Error
}

func (r *venueRepository) DeleteReview(id uint) error {
	return r.db.Delete(&VenueReview{}, id).Error
}
