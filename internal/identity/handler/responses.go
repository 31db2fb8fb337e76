package handler

import (
	"time"

	"github.com/ustudiopd/EventLive-sub001/internal/identity/service"
	id "github.com/ustudiopd/EventLive-sub001/pkg/domain"
)

// LoginResponse is the HTTP response for POST /auth/login. The token is also
// set as a cookie for browser callers; API callers read it from the body.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`

	UserID      id.UserID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// FromLoginResult converts a login result to an HTTP response.
func FromLoginResult(result *service.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:       result.Token,
		ExpiresAt:   result.Session.ExpiresAt,
		UserID:      result.Profile.ID,
		Email:       result.Profile.Email,
		DisplayName: result.Profile.DisplayName,
	}
}
