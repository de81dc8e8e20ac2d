package domain

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// View is the client-chosen filter and sort state for the product listing.
// Filters are conjunctive; the search query matches name, description or any
// scent note, case-insensitively.
type View struct {
	SearchQuery   string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64 // 0 means unbounded
	MinRating     float64
	InStockOnly   bool
	Sort          SortKey
}

// ApplyView filters and sorts products. It never mutates its input and keeps
// input order for ties (stable sort).
func ApplyView(products []Product, v View) []Product {
	out := make([]Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(v.SearchQuery))

	for _, p := range products {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if v.Category != "" && p.Category != v.Category {
			continue
		}
		if p.PriceCents < v.MinPriceCents {
			continue
		}
		if v.MaxPriceCents > 0 && p.PriceCents > v.MaxPriceCents {
			continue
		}
		if v.MinRating > 0 && p.Rating < v.MinRating {
			continue
		}
		if v.InStockOnly && !p.InStock() {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, v.Sort)
	return out
}

func matchesQuery(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, note := range p.ScentNotes {
		if strings.Contains(strings.ToLower(note), q) {
			return true
		}
	}
	return false
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	}
}
