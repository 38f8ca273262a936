package auth

import (
	"context"
	"crypto/subtle"

	"github.com/daybook-hq/daybook/internal/config"
)

// StaticAuthorizer validates requests against a single configured API key
// and maps it to a single user. This is the single-tenant deployment model:
// one dashboard, one owner.
type StaticAuthorizer struct {
	apiKey string
	userID string
}

// NewStaticAuthorizer builds the authorizer from config. When no API key is
// configured (local development) every bearer token resolves to the dev user.
func NewStaticAuthorizer(cfg *config.Config) *StaticAuthorizer {
	return &StaticAuthorizer{apiKey: cfg.APIKey, userID: cfg.DevUserID}
}

func (a *StaticAuthorizer) Authorize(ctx context.Context, apiKey string) (*UserInfo, error) {
	if a.apiKey != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(a.apiKey)) != 1 {
		return nil, ErrInvalidAPIKey
	}
	return &UserInfo{UserID: a.userID, KeyName: "Configured Key"}, nil
}
