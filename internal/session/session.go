package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ecomarket/storefront-core/internal/logger"
	"github.com/ecomarket/storefront-core/internal/model"
)

// EventKind names the session transition that produced an event.
type EventKind string

const (
	EventLoggedIn   EventKind = "logged-in"
	EventRegistered EventKind = "registered"
	EventLoggedOut  EventKind = "logged-out"
)

// Event is delivered to subscribers on every session change.
type Event struct {
	Kind EventKind
	User model.User
}

// Service holds the process-lifetime record of the authenticated user.
// Login and registration resolve after a simulated latency; submissions are
// stamped with a sequence number so a stale completion never overwrites the
// session state set by a newer one.
type Service struct {
	mu           sync.Mutex
	catalog      model.Catalog
	kv           model.KeyValue
	tokens       model.TokenManager
	logger       *logger.Logger
	demoPassword string
	latency      time.Duration

	seq     uint64
	current *model.User
	token   string
	subs    []chan Event
}

// NewService creates a session service rehydrated from persisted storage.
// Malformed persisted data is discarded: the slot is cleared and the
// session starts empty, never surfaced as an error.
func NewService(
	ctx context.Context,
	catalog model.Catalog,
	kv model.KeyValue,
	tokens model.TokenManager,
	logger *logger.Logger,
	demoPassword string,
	latency time.Duration,
) *Service {
	s := &Service{
		catalog:      catalog,
		kv:           kv,
		tokens:       tokens,
		logger:       logger,
		demoPassword: demoPassword,
		latency:      latency,
	}
	s.rehydrate(ctx)
	return s
}

func (s *Service) rehydrate(ctx context.Context) {
	raw, err := s.kv.Read(ctx, model.KeyCurrentUser)
	if errors.Is(err, model.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("Session service: failed to read persisted session", "error", err.Error())
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Error("Session service: failed to parse persisted session, resetting slot", "error", err.Error())
		if err := s.kv.Delete(ctx, model.KeyCurrentUser); err != nil {
			s.logger.Error("Session service: failed to reset session slot", "error", err.Error())
		}
		return
	}

	s.current = &user
	s.mintToken(user)
	s.logger.Debug("Session service: rehydrated", "email", user.Email)
}

// Login validates credentials against the catalog user list and the fixed
// demo password after the simulated latency. It returns the user and true
// on success; a failed, cancelled, or superseded attempt returns false with
// no detail distinguishing unknown email from wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, bool) {
	seq := s.nextSeq()

	s.logger.Debug("Session service: login started", "email", email)

	if !s.wait(ctx) {
		return model.User{}, false
	}

	user, err := s.catalog.UserByEmail(email)
	if err != nil || password != s.demoPassword {
		s.logger.Info("Session service: login failed", "email", email)
		return model.User{}, false
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Info("Session service: stale login superseded", "email", email)
		return model.User{}, false
	}
	s.current = &user
	s.mintToken(user)
	s.mu.Unlock()

	s.persist(ctx, user)
	s.notify(Event{Kind: EventLoggedIn, User: user})
	s.logger.Info("Session service: login succeeded", "email", email, "role", string(user.Role))

	return user, true
}

// Register always succeeds: no uniqueness check is made against existing
// emails. The new user gets a time-based id, becomes the current session
// and is persisted. The password is accepted but never stored.
func (s *Service) Register(ctx context.Context, email, name, _ string, role model.Role) (model.User, bool) {
	seq := s.nextSeq()

	s.logger.Debug("Session service: registration started", "email", email)

	if !s.wait(ctx) {
		return model.User{}, false
	}

	user := model.User{
		ID:        fmt.Sprintf("new-%d", time.Now().UnixMilli()),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Info("Session service: stale registration superseded", "email", email)
		return model.User{}, false
	}
	s.current = &user
	s.mintToken(user)
	s.mu.Unlock()

	s.persist(ctx, user)
	s.notify(Event{Kind: EventRegistered, User: user})
	s.logger.Info("Session service: registration succeeded", "email", email, "role", string(role))

	return user, true
}

// Logout clears the current session and removes the persisted slot.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	user := s.current
	s.current = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, model.KeyCurrentUser); err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Session service: failed to remove persisted session", "error", err.Error())
	}

	e := Event{Kind: EventLoggedOut}
	if user != nil {
		e.User = *user
	}
	s.notify(e)
	s.logger.Info("Session service: logged out")
}

// Current returns the logged-in user, if any.
func (s *Service) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether a user is logged in.
func (s *Service) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Token returns the signed session token for the current user, or empty.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers a change listener. Delivery is best-effort: slow
// subscribers miss events rather than blocking session transitions.
func (s *Service) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Service) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// wait blocks for the simulated auth latency, reporting false when ctx is
// cancelled first.
func (s *Service) wait(ctx context.Context) bool {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// mintToken signs a session token for the user. Callers hold s.mu.
// Failures leave the previous token in place and are only logged: the demo
// session itself does not depend on the token.
func (s *Service) mintToken(user model.User) {
	tok, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("Session service: failed to mint session token", "error", err.Error())
		return
	}
	s.token = tok
}

func (s *Service) persist(ctx context.Context, user model.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("Session service: failed to serialize session", "error", err.Error())
		return
	}
	if err := s.kv.Write(ctx, model.KeyCurrentUser, string(raw)); err != nil {
		s.logger.Error("Session service: failed to persist session", "error", err.Error())
	}
}

func (s *Service) notify(e Event) {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
}
