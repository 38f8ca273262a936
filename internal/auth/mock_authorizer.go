package auth

import (
	"context"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only.
	LocalDevAPIKey = "dk_local_daybook_dev_key"
)

// MockAuthorizer recognizes only LocalDevAPIKey and resolves it to a fixed
// local user. Test and local-development use only.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer { return &MockAuthorizer{} }

func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey string) (*UserInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, ErrInvalidAPIKey
	}
	return &UserInfo{UserID: "local-user", KeyName: "Local Development Key"}, nil
}
