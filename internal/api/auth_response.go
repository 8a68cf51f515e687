package api

import (
	"blogify/internal/model"

	"github.com/google/uuid"
)

// swagger:model api.UserSummary
type UserSummary struct {
	ID       uuid.UUID `json:"id" example:"0b6c3a8e-7c1e-4f7e-9f8e-1a2b3c4d5e6f"`
	Username string    `json:"username" example:"alice"`
	Email    string    `json:"email" example:"alice@example.com"`
	Role     string    `json:"role" example:"user"`
}

// swagger:model api.AuthResponse
type AuthResponse struct {
	Message string      `json:"message" example:"Login successful"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// NewUserSummary 只輸出公開欄位，不含密碼雜湊
func NewUserSummary(u *model.User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
