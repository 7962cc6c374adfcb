package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ecomarket/storefront-core/internal/logger"
	"github.com/ecomarket/storefront-core/internal/model"
)

// EventKind names the mutation that produced a cart event.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event is delivered to subscribers after every effective cart mutation.
// Message carries the user-facing notification text.
type Event struct {
	Kind      EventKind
	ProductID string
	Quantity  int
	Message   string
}

// Store holds the cart entries for the current browsing session. Every
// mutation re-serializes the full entry list to the persisted cart slot and
// notifies subscribers. All operations are total: no errors are signalled
// to callers, persistence failures are only logged.
type Store struct {
	mu      sync.Mutex
	kv      model.KeyValue
	logger  *logger.Logger
	entries []model.CartEntry
	subs    []chan Event
}

// NewStore creates a cart store rehydrated from persisted storage.
// A corrupted cart slot is cleared and the cart starts empty.
func NewStore(ctx context.Context, kv model.KeyValue, logger *logger.Logger) *Store {
	s := &Store{
		kv:     kv,
		logger: logger,
	}
	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	raw, err := s.kv.Read(ctx, model.KeyCart)
	if errors.Is(err, model.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("Cart store: failed to read persisted cart", "error", err.Error())
		return
	}

	var entries []model.CartEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Error("Cart store: failed to parse persisted cart, resetting slot", "error", err.Error())
		if err := s.kv.Delete(ctx, model.KeyCart); err != nil {
			s.logger.Error("Cart store: failed to reset cart slot", "error", err.Error())
		}
		return
	}

	s.entries = entries
	s.logger.Debug("Cart store: rehydrated", "entries", len(entries))
}

// Add increments the quantity of an existing entry or inserts a new one.
// No stock bound is checked at this layer; clamping is the caller's job.
func (s *Store) Add(ctx context.Context, product model.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry.ProductID == product.ID {
			s.entries[i].Quantity += quantity
			s.persist(ctx)
			s.notify(Event{
				Kind:      EventUpdated,
				ProductID: product.ID,
				Quantity:  s.entries[i].Quantity,
				Message:   fmt.Sprintf("%s quantity increased to %d", product.Name, s.entries[i].Quantity),
			})
			return
		}
	}

	s.entries = append(s.entries, model.CartEntry{
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	})
	s.persist(ctx)
	s.notify(Event{
		Kind:      EventAdded,
		ProductID: product.ID,
		Quantity:  quantity,
		Message:   fmt.Sprintf("%s added to your cart", product.Name),
	})
}

// Remove deletes the entry for productID. Silent no-op when absent; an
// event is emitted only when an entry was actually removed.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i, entry := range s.entries {
		if entry.ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist(ctx)
			s.notify(Event{
				Kind:      EventRemoved,
				ProductID: productID,
				Message:   fmt.Sprintf("%s removed from your cart", entry.Product.Name),
			})
			return
		}
	}
}

// SetQuantity overwrites the quantity of an existing entry. A quantity of
// zero or less behaves exactly as Remove. Unknown ids are a silent no-op.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i, entry := range s.entries {
		if entry.ProductID == productID {
			s.entries[i].Quantity = quantity
			s.persist(ctx)
			s.notify(Event{
				Kind:      EventUpdated,
				ProductID: productID,
				Quantity:  quantity,
				Message:   fmt.Sprintf("%s quantity set to %d", entry.Product.Name, quantity),
			})
			return
		}
	}
}

// Clear empties all entries and always emits an event.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist(ctx)
	s.notify(Event{
		Kind:    EventCleared,
		Message: "All items have been removed from your cart",
	})
}

// Entries returns a copy of the current cart entries in insertion order.
func (s *Store) Entries() []model.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// TotalItemCount is the sum of all entry quantities.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, entry := range s.entries {
		total += entry.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity over all entries.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, entry := range s.entries {
		total += entry.Product.Price * float64(entry.Quantity)
	}
	return total
}

// Subscribe registers a change listener. Events are delivered best-effort:
// a subscriber that falls behind its buffer misses events rather than
// blocking mutations.
func (s *Store) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notify(e Event) {
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// persist writes the full entry list to the cart slot. Failures are logged,
// never propagated: a crash mid-write leaving stale data is accepted.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("Cart store: failed to serialize cart", "error", err.Error())
		return
	}
	if err := s.kv.Write(ctx, model.KeyCart, string(raw)); err != nil {
		s.logger.Error("Cart store: failed to persist cart", "error", err.Error())
	}
}
