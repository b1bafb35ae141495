package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/config"
	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/user"
	"github.com/woorifc/kickmate/pkg/hash"
	"github.com/woorifc/kickmate/pkg/responses"
	"github.com/woorifc/kickmate/pkg/token"
)

// AuthController handles registration, login and token refresh.
type AuthController struct {
	repo AuthRepository
	cfg  *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, cfg: cfg}
}

func (ac *AuthController) accessLifetime() time.Duration {
	return time.Duration(ac.cfg.JWT.AccessTokenExpiryMinutes) * time.Minute
}

func (ac *AuthController) refreshLifetime() time.Duration {
	return time.Duration(ac.cfg.JWT.RefreshTokenExpiryDays) * 24 * time.Hour
}

// issueTokens signs a fresh access/refresh pair and persists the refresh half.
func (ac *AuthController) issueTokens(u *user.User) (*AuthResponse, error) {
	access, err := token.Generate(u.ID, ac.cfg.JWT.AccessTokenSecret, ac.accessLifetime())
	if err != nil {
		return nil, err
	}
	refresh, err := token.Generate(u.ID, ac.cfg.JWT.RefreshTokenSecret, ac.refreshLifetime())
	if err != nil {
		return nil, err
	}
	rt := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(ac.refreshLifetime()),
	}
	if err := ac.repo.StoreRefreshToken(rt); err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: access, RefreshToken: refresh, User: *u}, nil
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if existing, err := ac.repo.GetUserByEmail(req.Email); err != nil {
		responses.InternalServerError(c, "Failed to check email: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, apperrors.Status(apperrors.ErrEmailTaken), apperrors.ErrEmailTaken.Error())
		return
	}
	if existing, err := ac.repo.GetUserByUsername(req.Username); err != nil {
		responses.InternalServerError(c, "Failed to check username: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, apperrors.Status(apperrors.ErrUsernameTaken), apperrors.ErrUsernameTaken.Error())
		return
	}

	hashed, err := hash.Password(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := &user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
	}
	if req.Skill != "" {
		u.SkillLevel = req.Skill
	}
	if err := ac.repo.CreateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user: "+err.Error())
		return
	}
	if u == nil || !hash.Check(u.Password, req.Password) {
		responses.SendError(c, apperrors.Status(apperrors.ErrInvalidCredentials), apperrors.ErrInvalidCredentials.Error())
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The presented refresh token is revoked and replaced.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	claims, err := token.Validate(req.RefreshToken, ac.cfg.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up token: "+err.Error())
		return
	}
	if stored == nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		responses.Unauthorized(c, "Refresh token is no longer valid")
		return
	}

	u, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user: "+err.Error())
		return
	}
	if u == nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	// Rotate: the old token dies with this exchange.
	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to revoke token: "+err.Error())
		return
	}

	resp, err := ac.issueTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Token refreshed successfully", resp)
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token to revoke"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to revoke token: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
