package seller

import (
	"sort"

	"github.com/ecomarket/storefront-core/internal/model"
)

// Summary aggregates the headline numbers of the seller dashboard.
type Summary struct {
	TotalSales        float64
	TotalOrders       int
	AverageOrderValue float64
	ProductCount      int
}

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Name  string
	Count int
}

// Stats derives seller dashboard figures from the read-only catalog.
// Every method recomputes from the source lists; nothing is cached.
type Stats struct {
	catalog model.Catalog
}

// New creates a Stats view over the given catalog.
func New(catalog model.Catalog) *Stats {
	return &Stats{catalog: catalog}
}

// Summary returns total sales, order count, average order value and the
// listed product count. Total sales is the sum over the monthly sales
// buckets; the average is computed over the individual orders.
func (s *Stats) Summary() Summary {
	sales := 0.0
	for _, point := range s.catalog.SalesSeries() {
		sales += point.Amount
	}

	orders := s.catalog.Orders()
	orderTotal := 0.0
	for _, order := range orders {
		orderTotal += order.TotalAmount
	}

	avg := 0.0
	if len(orders) > 0 {
		avg = orderTotal / float64(len(orders))
	}

	return Summary{
		TotalSales:        sales,
		TotalOrders:       len(orders),
		AverageOrderValue: avg,
		ProductCount:      len(s.catalog.Products()),
	}
}

// CategoryCounts returns product counts per category, in the order
// categories first appear in the catalog.
func (s *Stats) CategoryCounts() []CategoryCount {
	var counts []CategoryCount
	index := map[string]int{}

	for _, p := range s.catalog.Products() {
		i, ok := index[p.Category]
		if !ok {
			index[p.Category] = len(counts)
			counts = append(counts, CategoryCount{Name: p.Category, Count: 1})
			continue
		}
		counts[i].Count++
	}

	return counts
}

// RecentOrders returns up to n orders, newest first. Ties keep their
// original order.
func (s *Stats) RecentOrders(n int) []model.Order {
	orders := s.catalog.Orders()
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if n >= 0 && n < len(orders) {
		orders = orders[:n]
	}
	return orders
}

// SalesSeries returns the monthly sales buckets for charting.
func (s *Stats) SalesSeries() []model.SalesPoint {
	return s.catalog.SalesSeries()
}
