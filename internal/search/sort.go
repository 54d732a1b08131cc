package search

import (
	"sort"
	"strings"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// Sort keys accepted by the search endpoints.
const (
	SortNameAsc    = "name_asc"
	SortNameDesc   = "name_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
)

// SortProducts orders results in place. An unknown or empty key leaves the
// store's relevance order untouched. The sort is stable so ties keep their
// relative relevance.
func SortProducts(products []domain.Product, key string) {
	var less func(a, b domain.Product) bool
	switch key {
	case SortNameAsc:
		less = func(a, b domain.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortNameDesc:
		less = func(a, b domain.Product) bool {
			return strings.ToLower(a.Name) > strings.ToLower(b.Name)
		}
	case SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case SortRatingDesc:
		less = func(a, b domain.Product) bool { return a.AverageRating > b.AverageRating }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
