package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ecomarket/storefront-core/internal/model"
)

var _ model.TokenManager = (*TokenManager)(nil)

// TokenManager is a testify mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

// NewTokenManager creates a mock that verifies its expectations on test
// cleanup.
func NewTokenManager(t *testing.T) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenManager) Generate(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.SessionClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}
