package pricing

import "strings"

const (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = 50.00
	// StandardShipping is the flat fee below the free-shipping threshold.
	StandardShipping = 4.95

	promoCode = "ECO20"
	promoRate = 0.20
)

// Quote is the full pricing breakdown for a cart.
type Quote struct {
	Subtotal float64
	Shipping float64
	Discount float64
	Total    float64
}

// ShippingFee returns the shipping cost for the given subtotal.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShipping
}

// Discount returns the discount a promo code yields on the given subtotal
// and whether the code was recognized. Matching is case-insensitive.
func Discount(subtotal float64, code string) (float64, bool) {
	if strings.ToUpper(code) != promoCode {
		return 0, false
	}
	return subtotal * promoRate, true
}

// ComputeQuote derives the grand total from a subtotal and an already
// validated discount. The discount is clamped to the subtotal so the total
// never drops below the shipping fee.
func ComputeQuote(subtotal, discount float64) Quote {
	if discount > subtotal {
		discount = subtotal
	}
	shipping := ShippingFee(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + shipping - discount,
	}
}
