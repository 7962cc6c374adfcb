package model

// CartEntry pairs a product with the quantity a user intends to purchase.
// The cart keeps at most one entry per product id. The product snapshot is
// carried on the entry so persisted carts survive without a catalog lookup,
// matching how the original storefront stored them.
type CartEntry struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}
