package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Category    string    `json:"category"`
	ScentNotes  []string  `json:"scent_notes"`
	Rating      float64   `json:"rating"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
