package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations. Lookups
// return (nil, nil) when the row does not exist.
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error
	GetTeamsByUserID(userID uint, page, limit int) ([]Team, int64, error)

	// TeamMember operations
	AddMember(member *TeamMember) error
	GetMember(teamID, userID uint) (*TeamMember, error)
	GetMemberByID(id uint) (*TeamMember, error)
	GetMembers(teamID uint) ([]TeamMember, error)
	UpdateMember(member *TeamMember) error
	DeleteMember(id uint) error

	// TeamJoinRequest operations
	CreateJoinRequest(request *TeamJoinRequest) error
	GetJoinRequestByID(id uint) (*TeamJoinRequest, error)
	GetPendingJoinRequest(teamID, userID uint) (*TeamJoinRequest, error)
	GetJoinRequestsByTeam(teamID uint, status JoinRequestStatus) ([]TeamJoinRequest, error)
	GetJoinRequestsByUser(userID uint, status JoinRequestStatus) ([]TeamJoinRequest, error)
	UpdateJoinRequest(request *TeamJoinRequest) error
	DeleteJoinRequest(id uint) error

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a gorm-backed TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if level, ok := filters["level"]; ok {
		query = query.Where("level = ?", level)
	}
	if region, ok := filters["region"]; ok {
		query = query.Where("region = ?", region)
	}
	if recruiting, ok := filters["is_recruiting"]; ok {
		query = query.Where("is_recruiting = ?", recruiting)
	}
	if name, ok := filters["name"]; ok {
		query = query.Where("name ILIKE ?", "%"+name.(string)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

// DeleteTeam removes the team together with its memberships and join
// requests. Deleting the team is the only way to dissolve ownership.
func (r *teamRepository) DeleteTeam(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&TeamJoinRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Team{}, id).Error
	})
}

func (r *teamRepository) GetTeamsByUserID(userID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.deleted_at IS NULL", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("teams.created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// --- TeamMember operations ---

func (r *teamRepository) AddMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) GetMember(teamID, userID uint) (*TeamMember, error) {
	var member TeamMember
	err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetMemberByID(id uint) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) UpdateMember(member *TeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamRepository) DeleteMember(id uint) error {
	return r.db.Delete(&TeamMember{}, id).Error
}

// --- TeamJoinRequest operations ---

func (r *teamRepository) CreateJoinRequest(request *TeamJoinRequest) error {
	return r.db.Create(request).Error
}

func (r *teamRepository) GetJoinRequestByID(id uint) (*TeamJoinRequest, error) {
	var request TeamJoinRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *teamRepository) GetPendingJoinRequest(teamID, userID uint) (*TeamJoinRequest, error) {
	var request TeamJoinRequest
	err := r.db.Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, RequestPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *teamRepository) GetJoinRequestsByTeam(teamID uint, status JoinRequestStatus) ([]TeamJoinRequest, error) {
	var requests []TeamJoinRequest
	query := r.db.Preload("User").Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *teamRepository) GetJoinRequestsByUser(userID uint, status JoinRequestStatus) ([]TeamJoinRequest, error) {
	var requests []TeamJoinRequest
	query := r.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *teamRepository) UpdateJoinRequest(request *TeamJoinRequest) error {
	return r.db.Save(request).Error
}

func (r *teamRepository) DeleteJoinRequest(id uint) error {
	return r.db.Delete(&TeamJoinRequest{}, id).Error
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
