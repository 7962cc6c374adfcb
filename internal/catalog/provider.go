package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ecomarket/storefront-core/internal/model"
)

//go:embed fixture.yaml
var fixtureYAML []byte

// fixture is the on-disk shape of the demo dataset. Order items reference
// products by id so the fixture stays free of duplication; references are
// resolved when the provider is built.
type fixture struct {
	Users    []model.User      `yaml:"users"`
	Products []model.Product   `yaml:"products"`
	Orders   []fixtureOrder    `yaml:"orders"`
	Sales    []model.SalesPoint `yaml:"salesSeries"`
}

type fixtureOrder struct {
	ID              string             `yaml:"id"`
	UserID          string             `yaml:"userId"`
	Items           []fixtureOrderItem `yaml:"items"`
	Status          model.OrderStatus  `yaml:"status"`
	TotalAmount     float64            `yaml:"totalAmount"`
	CreatedAt       time.Time          `yaml:"createdAt"`
	ShippingAddress model.Address      `yaml:"shippingAddress"`
	PaymentMethod   string             `yaml:"paymentMethod"`
}

type fixtureOrderItem struct {
	ProductID       string  `yaml:"productId"`
	Quantity        int     `yaml:"quantity"`
	PriceAtPurchase float64 `yaml:"priceAtPurchase"`
}

var _ model.Catalog = (*Provider)(nil)

// Provider serves the immutable demo catalog: products, users, historical
// orders and the seller sales series. Accessors return copies so callers
// can never mutate the source data.
type Provider struct {
	products []model.Product
	users    []model.User
	orders   []model.Order
	sales    []model.SalesPoint
}

// NewProvider builds a Provider from the embedded demo fixture.
func NewProvider() (*Provider, error) {
	var f fixture
	if err := yaml.Unmarshal(fixtureYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog fixture: %w", err)
	}

	p := &Provider{
		products: f.Products,
		users:    f.Users,
		sales:    f.Sales,
	}

	for _, fo := range f.Orders {
		order := model.Order{
			ID:              fo.ID,
			UserID:          fo.UserID,
			Status:          fo.Status,
			TotalAmount:     fo.TotalAmount,
			CreatedAt:       fo.CreatedAt,
			ShippingAddress: fo.ShippingAddress,
			PaymentMethod:   fo.PaymentMethod,
		}
		for _, it := range fo.Items {
			product, err := p.ProductByID(it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("order %s references unknown product %s", fo.ID, it.ProductID)
			}
			order.Items = append(order.Items, model.OrderItem{
				Product:         product,
				Quantity:        it.Quantity,
				PriceAtPurchase: it.PriceAtPurchase,
			})
		}
		p.orders = append(p.orders, order)
	}

	return p, nil
}

// NewProviderFromData builds a Provider from explicit records, mainly for
// tests.
func NewProviderFromData(products []model.Product, users []model.User, orders []model.Order, sales []model.SalesPoint) *Provider {
	return &Provider{products: products, users: users, orders: orders, sales: sales}
}

// Products returns the full ordered product list.
func (p *Provider) Products() []model.Product {
	out := make([]model.Product, len(p.products))
	copy(out, p.products)
	return out
}

// ProductByID returns the product with the given id or model.ErrNotFound.
func (p *Provider) ProductByID(id string) (model.Product, error) {
	for _, product := range p.products {
		if product.ID == id {
			return product, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

// Users returns the demo user list.
func (p *Provider) Users() []model.User {
	out := make([]model.User, len(p.users))
	copy(out, p.users)
	return out
}

// UserByEmail returns the user with the given email or model.ErrNotFound.
func (p *Provider) UserByEmail(email string) (model.User, error) {
	for _, user := range p.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

// Orders returns the historical demo orders.
func (p *Provider) Orders() []model.Order {
	out := make([]model.Order, len(p.orders))
	copy(out, p.orders)
	return out
}

// SalesSeries returns the monthly sales buckets for the seller dashboard.
func (p *Provider) SalesSeries() []model.SalesPoint {
	out := make([]model.SalesPoint, len(p.sales))
	copy(out, p.sales)
	return out
}
