package model

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line of an order, with the price frozen at purchase time.
type OrderItem struct {
	Product         Product `json:"product" yaml:"product"`
	Quantity        int     `json:"quantity" yaml:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase" yaml:"priceAtPurchase"`
}

// Address is a shipping destination.
type Address struct {
	Street     string `json:"street" yaml:"street"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state" yaml:"state"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	Country    string `json:"country" yaml:"country"`
}

// Order is a historical purchase from the demo dataset.
type Order struct {
	ID              string      `json:"id" yaml:"id"`
	UserID          string      `json:"userId" yaml:"userId"`
	Items           []OrderItem `json:"items" yaml:"items"`
	Status          OrderStatus `json:"status" yaml:"status"`
	TotalAmount     float64     `json:"totalAmount" yaml:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt" yaml:"createdAt"`
	ShippingAddress Address     `json:"shippingAddress" yaml:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod" yaml:"paymentMethod"`
}

// SalesPoint is one bucket of the seller dashboard sales series.
type SalesPoint struct {
	Label  string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"`
}
