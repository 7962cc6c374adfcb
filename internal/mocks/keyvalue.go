package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ecomarket/storefront-core/internal/model"
)

var _ model.KeyValue = (*KeyValue)(nil)

// KeyValue is a testify mock of model.KeyValue.
type KeyValue struct {
	mock.Mock
}

// NewKeyValue creates a mock that verifies its expectations on test cleanup.
func NewKeyValue(t *testing.T) *KeyValue {
	m := &KeyValue{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *KeyValue) Read(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KeyValue) Write(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KeyValue) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
