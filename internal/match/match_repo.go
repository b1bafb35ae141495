package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations. Lookups
// return (nil, nil) when the row does not exist.
type MatchRepository interface {
	// Match operations
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetAllMatches(page, limit int, filters map[string]interface{}) ([]Match, int64, error)
	UpdateMatch(m *Match) error
	DeleteMatch(id uint) error
	GetMatchesByHostID(hostID uint, page, limit int) ([]Match, int64, error)
	GetMatchesByParticipant(userID uint, page, limit int) ([]Match, int64, error)
	VenueExists(venueID uint) (bool, error)

	// MatchParticipant operations
	CreateParticipant(p *MatchParticipant) error
	GetParticipant(matchID, userID uint) (*MatchParticipant, error)
	GetParticipants(matchID uint) ([]MatchParticipant, error)
	UpdateParticipant(p *MatchParticipant) error
	CountActiveParticipants(matchID uint) (int64, error)

	// MatchResult operations
	CreateResult(r *MatchResult) error
	GetResultByMatchID(matchID uint) (*MatchResult, error)

	WithTransaction(txFunc func(MatchRepository) error) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a gorm-backed MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// --- Match operations ---

func (r *matchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	err := r.db.Preload("Venue").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetAllMatches(page, limit int, filters map[string]interface{}) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if venueID, ok := filters["venue_id"]; ok {
		query = query.Where("venue_id = ?", venueID)
	}
	if skill, ok := filters["skill_level"]; ok {
		query = query.Where("skill_level = ?", skill)
	}
	if gender, ok := filters["gender"]; ok {
		query = query.Where("gender = ?", gender)
	}
	if from, ok := filters["date_from"]; ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filters["date_to"]; ok {
		query = query.Where("date <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Venue").
		Offset(offset).Limit(limit).
		Order("date asc, start_time asc").
		Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) UpdateMatch(m *Match) error {
	return r.db.Save(m).Error
}

// DeleteMatch removes the match together with its participant rows.
func (r *matchRepository) DeleteMatch(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", id).Delete(&MatchParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Match{}, id).Error
	})
}

func (r *matchRepository) GetMatchesByHostID(hostID uint, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("host_id = ?", hostID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Venue").Offset(offset).Limit(limit).Order("date desc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) GetMatchesByParticipant(userID uint, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).
		Joins("JOIN match_participants ON match_participants.match_id = matches.id").
		Where("match_participants.user_id = ? AND match_participants.status <> ? AND match_participants.deleted_at IS NULL",
			userID, ParticipantCanceled)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("Venue").Offset(offset).Limit(limit).Order("matches.date desc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) VenueExists(venueID uint) (bool, error) {
	var count int64
	err := r.db.Table("venues").Where("id = ? AND deleted_at IS NULL", venueID).Count(&count).Error
	return count > 0, err
}

// --- MatchParticipant operations ---

func (r *matchRepository) CreateParticipant(p *MatchParticipant) error {
	return r.db.Create(p).Error
}

func (r *matchRepository) GetParticipant(matchID, userID uint) (*MatchParticipant, error) {
	var p MatchParticipant
	err := r.db.Where("match_id = ? AND user_id = ?", matchID, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *matchRepository) GetParticipants(matchID uint) ([]MatchParticipant, error) {
	var participants []MatchParticipant
	err := r.db.Preload("User").
		Where("match_id = ?", matchID).
		Order("created_at asc").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *matchRepository) UpdateParticipant(p *MatchParticipant) error {
	return r.db.Save(p).Error
}

// CountActiveParticipants counts the rows holding a slot. CANCELED rows are
// excluded; REGISTERED, ATTENDED and NOSHOW all occupy one.
func (r *matchRepository) CountActiveParticipants(matchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&MatchParticipant{}).
		Where("match_id = ? AND status <> ?", matchID, ParticipantCanceled).
		Count(&count).Error
	return count, err
}

// --- MatchResult operations ---

func (r *matchRepository) CreateResult(result *MatchResult) error {
	return r.db.Create(result).Error
}

func (r *matchRepository) GetResultByMatchID(matchID uint) (*MatchResult, error) {
	var result MatchResult
	err := r.db.Where("match_id = ?", matchID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *matchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&matchRepository{db: tx})
	})
}
