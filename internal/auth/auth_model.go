package auth

import "github.com/woorifc/kickmate/internal/user"

type RegisterRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=30,alphanum"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8,max=72"`
	Phone    string          `json:"phone" binding:"omitempty,max=20"`
	Skill    user.SkillLevel `json:"skill_level" binding:"omitempty,oneof=BEG INT ADV PRO"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse carries the token pair returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         user.User `json:"user"`
}
