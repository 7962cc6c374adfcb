package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecomarket/storefront-core/internal/logger"
)

// Result is the outcome of one promo submission. Superseded marks a result
// whose submission was overtaken by a newer one while it was pending; such
// results must not be applied to the order.
type Result struct {
	Code       string
	Valid      bool
	Discount   float64
	Superseded bool
}

// Validator simulates the asynchronous promo code check of the original
// storefront. Each submission is stamped with a monotonically increasing
// sequence number; after the fixed latency elapses, a submission that is no
// longer the latest resolves as superseded. This replaces the original
// last-completion-wins hazard with a deterministic last-submission-wins
// rule.
type Validator struct {
	mu      sync.Mutex
	seq     uint64
	latency time.Duration
	logger  *logger.Logger
}

// NewValidator creates a promo validator with the given simulated latency.
func NewValidator(latency time.Duration, logger *logger.Logger) *Validator {
	return &Validator{
		latency: latency,
		logger:  logger,
	}
}

// Validate checks the promo code against the given subtotal after the
// simulated latency. It blocks until the latency elapses or ctx is done.
func (v *Validator) Validate(ctx context.Context, code string, subtotal float64) (Result, error) {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	requestID := uuid.NewString()
	v.logger.Debug("Promo validator: submission received",
		"request_id", requestID,
		"code", code)

	timer := time.NewTimer(v.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("promo validation cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	discount, valid := Discount(subtotal, code)
	result := Result{
		Code:     code,
		Valid:    valid,
		Discount: discount,
	}

	v.mu.Lock()
	if seq != v.seq {
		result.Superseded = true
	}
	v.mu.Unlock()

	if result.Superseded {
		v.logger.Info("Promo validator: stale submission superseded",
			"request_id", requestID,
			"code", code)
		return result, nil
	}

	if !valid {
		v.logger.Info("Promo validator: invalid promo code",
			"request_id", requestID,
			"code", code)
	}

	return result, nil
}
