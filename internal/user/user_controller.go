package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/internal/middleware"
	"github.com/woorifc/kickmate/pkg/hash"
	"github.com/woorifc/kickmate/pkg/responses"
)

// UserController handles profile-related HTTP requests.
type UserController struct {
	repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

type UpdateProfileRequest struct {
	Phone        *string     `json:"phone,omitempty"`
	BirthDate    *time.Time  `json:"birth_date,omitempty"`
	ProfileImage *string     `json:"profile_image,omitempty"`
	SkillLevel   *SkillLevel `json:"skill_level,omitempty" binding:"omitempty,oneof=BEG INT ADV PRO"`
	Bio          *string     `json:"bio,omitempty" binding:"omitempty,max=1000"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

// ProfileResponse is the public view of a user.
type ProfileResponse struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	ProfileImage  string     `json:"profile_image"`
	SkillLevel    SkillLevel `json:"skill_level"`
	Rating        float64    `json:"rating"`
	MatchesPlayed int        `json:"matches_played"`
	Wins          int        `json:"wins"`
	Draws         int        `json:"draws"`
	Losses        int        `json:"losses"`
	WinRate       float64    `json:"win_rate"`
	Bio           string     `json:"bio"`
}

func toProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Username:      u.Username,
		ProfileImage:  u.ProfileImage,
		SkillLevel:    u.SkillLevel,
		Rating:        u.Rating,
		MatchesPlayed: u.MatchesPlayed,
		Wins:          u.Wins,
		Draws:         u.Draws,
		Losses:        u.Losses,
		WinRate:       u.WinRate(),
		Bio:           u.Bio,
	}
}

// GetMe godoc
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Security ApiKeyAuth
// @Router /me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	u, err := uc.repo.GetByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", u)
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /me [put]
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.repo.GetByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		u.BirthDate = req.BirthDate
	}
	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}
	if req.SkillLevel != nil {
		u.SkillLevel = *req.SkillLevel
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}

	if err := uc.repo.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}

// GetByUsername godoc
// @Summary Get a user's public profile
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{username} [get]
func (uc *UserController) GetByUsername(c *gin.Context) {
	u, err := uc.repo.GetByUsername(c.Param("username"))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", toProfileResponse(u))
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Users
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Password change payload"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /me/password [post]
func (uc *UserController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.repo.GetByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	if !hash.Check(u.Password, req.OldPassword) {
		responses.BadRequest(c, "Old password is incorrect")
		return
	}

	hashed, err := hash.Password(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}
	u.Password = hashed

	if err := uc.repo.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to change password: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}
