package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront-core/internal/catalog"
	"github.com/ecomarket/storefront-core/internal/mocks"
	"github.com/ecomarket/storefront-core/internal/model"
	"github.com/ecomarket/storefront-core/internal/storage/memory"
	"github.com/ecomarket/storefront-core/internal/testutil"
	"github.com/ecomarket/storefront-core/internal/token"
)

const demoPassword = "password"

func newTestService(t *testing.T, kv model.KeyValue) *Service {
	t.Helper()
	provider, err := catalog.NewProvider()
	require.NoError(t, err)
	return NewService(
		context.Background(),
		provider,
		kv,
		token.NewJWT("secret"),
		testutil.MakeNoopLogger(),
		demoPassword,
		time.Millisecond,
	)
}

func TestService_LoginKnownUser(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newTestService(t, kv)

	user, ok := s.Login(ctx, "buyer@example.com", demoPassword)
	require.True(t, ok)
	assert.Equal(t, "Alex Johnson", user.Name)
	assert.True(t, s.IsAuthenticated())
	assert.NotEmpty(t, s.Token())

	raw, err := kv.Read(ctx, model.KeyCurrentUser)
	require.NoError(t, err)
	var persisted model.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, user.ID, persisted.ID)
}

func TestService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, memory.New())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "buyer@example.com", password: "letmein"},
		{name: "unknown email", email: "nobody@example.com", password: demoPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok := s.Login(ctx, tt.email, tt.password)
			assert.False(t, ok)
			assert.Empty(t, user.ID)
			assert.False(t, s.IsAuthenticated())
		})
	}
}

func TestService_RegisterAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newTestService(t, kv)

	// Even an email already present in the catalog goes through: there
	// is no uniqueness check.
	user, ok := s.Register(ctx, "buyer@example.com", "Another Alex", "whatever", model.RoleSeller)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(user.ID, "new-"))
	assert.Equal(t, model.RoleSeller, user.Role)
	assert.True(t, s.IsAuthenticated())

	_, err := kv.Read(ctx, model.KeyCurrentUser)
	assert.NoError(t, err)
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newTestService(t, kv)

	_, ok := s.Login(ctx, "buyer@example.com", demoPassword)
	require.True(t, ok)

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	_, err := kv.Read(ctx, model.KeyCurrentUser)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestService_RehydratesPersistedSession(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	first := newTestService(t, kv)
	_, ok := first.Login(ctx, "seller@example.com", demoPassword)
	require.True(t, ok)

	second := newTestService(t, kv)
	user, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "seller@example.com", user.Email)
	assert.NotEmpty(t, second.Token())
}

func TestService_MalformedPersistedSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Write(ctx, model.KeyCurrentUser, "{broken"))

	s := newTestService(t, kv)

	assert.False(t, s.IsAuthenticated())
	_, err := kv.Read(ctx, model.KeyCurrentUser)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestService_StaleLoginIsSuperseded(t *testing.T) {
	ctx := context.Background()
	provider, err := catalog.NewProvider()
	require.NoError(t, err)
	s := NewService(ctx, provider, memory.New(), token.NewJWT("secret"),
		testutil.MakeNoopLogger(), demoPassword, 100*time.Millisecond)

	var wg sync.WaitGroup
	var firstOK bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstOK = s.Login(ctx, "buyer@example.com", demoPassword)
	}()

	time.Sleep(20 * time.Millisecond)
	second, secondOK := s.Login(ctx, "seller@example.com", demoPassword)

	wg.Wait()

	assert.False(t, firstOK)
	require.True(t, secondOK)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
}

func TestService_LoginCancelled(t *testing.T) {
	provider, err := catalog.NewProvider()
	require.NoError(t, err)
	s := NewService(context.Background(), provider, memory.New(), token.NewJWT("secret"),
		testutil.MakeNoopLogger(), demoPassword, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := s.Login(ctx, "buyer@example.com", demoPassword)
	assert.False(t, ok)
}

func TestService_TokenMintFailureDoesNotBlockLogin(t *testing.T) {
	ctx := context.Background()
	provider, err := catalog.NewProvider()
	require.NoError(t, err)

	tokens := mocks.NewTokenManager(t)
	tokens.On("Generate", mock.Anything).Return("", errors.New("signing failure"))

	s := NewService(ctx, provider, memory.New(), tokens,
		testutil.MakeNoopLogger(), demoPassword, time.Millisecond)

	_, ok := s.Login(ctx, "buyer@example.com", demoPassword)
	require.True(t, ok)
	assert.True(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestService_EventsOnTransitions(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, memory.New())
	events := s.Subscribe()

	_, ok := s.Login(ctx, "buyer@example.com", demoPassword)
	require.True(t, ok)
	s.Logout(ctx)

	loggedIn := <-events
	assert.Equal(t, EventLoggedIn, loggedIn.Kind)
	assert.Equal(t, "buyer@example.com", loggedIn.User.Email)

	loggedOut := <-events
	assert.Equal(t, EventLoggedOut, loggedOut.Kind)
}
