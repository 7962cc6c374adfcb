package model

// Catalog provides read-only access to the demo dataset. No mutation
// methods are exposed: accessors hand out copies.
type Catalog interface {
	Products() []Product
	ProductByID(id string) (Product, error)
	Users() []User
	UserByEmail(email string) (User, error)
	Orders() []Order
	SalesSeries() []SalesPoint
}

// SortKey selects the ordering of a filtered product listing.
type SortKey string

const (
	SortFeatured     SortKey = "featured"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortNewest       SortKey = "newest"
	SortRating       SortKey = "rating"
)

// PriceRange bounds product prices inclusively. A zero Max means no upper
// bound, so the zero value of Filter keeps every product.
type PriceRange struct {
	Min float64
	Max float64
}

// Filter holds every product listing criterion. The zero value matches the
// full catalog in default (featured-first) order.
type Filter struct {
	Query                  string
	Category               string
	Price                  PriceRange
	SustainabilityFeatures []string
	Sort                   SortKey
}
