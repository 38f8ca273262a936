package auth

import (
	"context"
)

// UserInfo identifies the authenticated user behind an API key.
type UserInfo struct {
	UserID  string `json:"user_id"`
	KeyName string `json:"key_name"`
}

// Authorizer resolves an API key to a user in one call.
type Authorizer interface {
	// Authorize validates the API key and returns the owning user.
	Authorize(ctx context.Context, apiKey string) (*UserInfo, error)
}
