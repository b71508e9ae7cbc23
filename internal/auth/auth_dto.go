package auth

import "go-shinsei/internal/directory"

// LoginRequest carries the demo login contract: a user identifier resolves
// to a directory user with a fixed role. No password.
type LoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type AuthResponse struct {
	AccessToken string                 `json:"access_token"`
	User        directory.UserResponse `json:"user"`
}
