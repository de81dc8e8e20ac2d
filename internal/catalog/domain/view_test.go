package domain

import (
	"testing"
	"time"
)

func sampleProducts() []Product {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{ID: "p1", Name: "Amber Veil", Description: "warm resinous evening scent",
			ScentNotes: []string{"Amber", "Vanilla"}, Category: "Oriental",
			PriceCents: 18500, Rating: 4.7, Stock: 12, CreatedAt: base},
		{ID: "p2", Name: "Cedar Line", Description: "dry woods and smoke",
			ScentNotes: []string{"Cedar", "Vetiver"}, Category: "Woody",
			PriceCents: 9900, Rating: 4.2, Stock: 0, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "p3", Name: "Bergamot Air", Description: "bright citrus opening",
			ScentNotes: []string{"Bergamot", "Neroli"}, Category: "Fresh",
			PriceCents: 12000, Rating: 4.9, Stock: 5, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "p4", Name: "Rose Atlas", Description: "dense rose heart",
			ScentNotes: []string{"Rose", "Oud"}, Category: "Floral",
			PriceCents: 18500, Rating: 3.9, Stock: 30, CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyView_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		view View
		want []string
	}{
		{"no filters sorts by name", View{}, []string{"p1", "p3", "p2", "p4"}},
		{"search matches name", View{SearchQuery: "cedar"}, []string{"p2"}},
		{"search matches description", View{SearchQuery: "citrus"}, []string{"p3"}},
		{"search matches scent note", View{SearchQuery: "oud"}, []string{"p4"}},
		{"search is case-insensitive", View{SearchQuery: "ROSE"}, []string{"p4"}},
		{"category", View{Category: "Woody"}, []string{"p2"}},
		{"price range", View{MinPriceCents: 10000, MaxPriceCents: 13000}, []string{"p3"}},
		{"min rating", View{MinRating: 4.5}, []string{"p1", "p3"}},
		{"in stock only", View{InStockOnly: true}, []string{"p1", "p3", "p4"}},
		{"filters are conjunctive", View{Category: "Oriental", MinRating: 4.9}, nil},
		{"search and stock combine", View{SearchQuery: "e", InStockOnly: true}, []string{"p1", "p3", "p4"}},
	}

	products := sampleProducts()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(ApplyView(products, tt.view))
			if !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyView_Sorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortName, []string{"p1", "p3", "p2", "p4"}},
		{SortPriceLow, []string{"p2", "p3", "p1", "p4"}},
		// p1 and p4 share a price; input order breaks the tie.
		{SortPriceHigh, []string{"p1", "p4", "p3", "p2"}},
		{SortRating, []string{"p3", "p1", "p2", "p4"}},
		{SortNewest, []string{"p4", "p2", "p3", "p1"}},
	}

	products := sampleProducts()
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()
			got := ids(ApplyView(products, View{Sort: tt.key}))
			if !equal(got, tt.want) {
				t.Errorf("sort %s: got %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestApplyView_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	before := ids(products)
	ApplyView(products, View{Sort: SortPriceHigh})
	if !equal(ids(products), before) {
		t.Errorf("input reordered: %v", ids(products))
	}
}
