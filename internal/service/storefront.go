package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecomarket/storefront-core/internal/cart"
	"github.com/ecomarket/storefront-core/internal/logger"
	"github.com/ecomarket/storefront-core/internal/model"
	"github.com/ecomarket/storefront-core/internal/pricing"
	"github.com/ecomarket/storefront-core/internal/session"
)

// Storefront orchestrates the catalog, cart, pricing and session modules
// the way the original storefront pages did: it is the layer that clamps
// quantities against stock and decides whether a promo result may be
// applied. The stores below it stay free of cross-cutting rules.
type Storefront struct {
	catalog model.Catalog
	cart    *cart.Store
	promo   *pricing.Validator
	session *session.Service
	logger  *logger.Logger

	mu       sync.Mutex
	discount float64
}

// NewStorefront wires the storefront service.
func NewStorefront(
	catalog model.Catalog,
	cartStore *cart.Store,
	promo *pricing.Validator,
	sess *session.Service,
	logger *logger.Logger,
) *Storefront {
	return &Storefront{
		catalog: catalog,
		cart:    cartStore,
		promo:   promo,
		session: sess,
		logger:  logger,
	}
}

// AddToCart resolves the product and adds the requested quantity to the
// cart. Unknown product ids return model.ErrNotFound.
func (s *Storefront) AddToCart(ctx context.Context, productID string, quantity int) error {
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return fmt.Errorf("failed to resolve product %s: %w", productID, err)
	}

	s.cart.Add(ctx, product, quantity)
	return nil
}

// ChangeQuantity sets the cart quantity for a product, clamped to the
// available stock. A quantity of zero or less removes the entry.
func (s *Storefront) ChangeQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		s.cart.Remove(ctx, productID)
		return nil
	}

	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return fmt.Errorf("failed to resolve product %s: %w", productID, err)
	}

	if quantity > product.Stock {
		quantity = product.Stock
	}
	s.cart.SetQuantity(ctx, productID, quantity)
	return nil
}

// ApplyPromo validates the promo code against the current subtotal and,
// when the result is still the latest submission, applies its discount to
// subsequent quotes. Invalid codes reset the discount to zero.
func (s *Storefront) ApplyPromo(ctx context.Context, code string) (pricing.Result, error) {
	result, err := s.promo.Validate(ctx, code, s.cart.Subtotal())
	if err != nil {
		return pricing.Result{}, err
	}
	if result.Superseded {
		return result, nil
	}

	s.mu.Lock()
	s.discount = result.Discount
	s.mu.Unlock()

	return result, nil
}

// Quote returns the pricing breakdown for the current cart and the last
// applied promo discount.
func (s *Storefront) Quote() pricing.Quote {
	s.mu.Lock()
	discount := s.discount
	s.mu.Unlock()

	return pricing.ComputeQuote(s.cart.Subtotal(), discount)
}

// Checkout requires an authenticated session. The demo stops there: no
// payment or order creation happens.
func (s *Storefront) Checkout(ctx context.Context) error {
	user, ok := s.session.Current()
	if !ok {
		return model.ErrUnauthorized
	}

	quote := s.Quote()
	s.logger.Info("Storefront: checkout started",
		"email", user.Email,
		"items", s.cart.TotalItemCount(),
		"total", quote.Total)

	return nil
}
