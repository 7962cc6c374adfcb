package catalog

import (
	"sort"
	"strings"

	"github.com/ecomarket/storefront-core/internal/model"
)

// FilterProducts derives a filtered, sorted view of the given products.
// The source slice is never mutated; a fresh slice is returned on every
// call. All sorts are stable: ties keep the original catalog order.
func FilterProducts(products []model.Product, f model.Filter) []model.Product {
	result := make([]model.Product, 0, len(products))

	query := strings.ToLower(f.Query)
	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if p.Price < f.Price.Min {
			continue
		}
		if f.Price.Max > 0 && p.Price > f.Price.Max {
			continue
		}
		if len(f.SustainabilityFeatures) > 0 && !sharesFeature(p, f.SustainabilityFeatures) {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case model.SortPriceLowHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case model.SortPriceHighLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case model.SortNewest:
		sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	case model.SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	case model.SortFeatured:
		fallthrough
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Featured && !result[j].Featured })
	}

	return result
}

// matchesQuery reports whether the lowercase query is a substring of the
// product name, description, category, or any tag.
func matchesQuery(p model.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sharesFeature reports whether the product shares at least one
// sustainability feature with the filter set (logical OR).
func sharesFeature(p model.Product, features []string) bool {
	for _, want := range features {
		for _, have := range p.SustainabilityFeatures {
			if have == want {
				return true
			}
		}
	}
	return false
}
