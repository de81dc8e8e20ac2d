package domain

// Line is one product entry in the cart. PriceCents is the unit price in
// minor currency units at the time the line was added.
type Line struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Cart holds the session's line items in insertion order, one line per
// product id. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// TaxRateBP is the flat tax rate in basis points applied to every order.
const TaxRateBP = 800

// AddLine inserts a new line or, when a line for the product already exists,
// increments its quantity. A quantity below 1 is treated as 1.
func (c *Cart) AddLine(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == l.ProductID {
			c.Lines[i].Quantity += l.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, l)
}

// SetQuantity sets a line's quantity exactly. Zero or negative removes the
// line. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for the product if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Totals is the single source for every money figure shown to the user.
// Cart review and checkout both go through it so they can never disagree.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	GrandCents    int64 `json:"grand_total_cents"`
}

// ComputeTotals derives subtotal, tax and grand total from the lines. Tax is
// rounded half up to the nearest cent.
func (c *Cart) ComputeTotals() Totals {
	var subtotal int64
	for _, l := range c.Lines {
		subtotal += l.PriceCents * int64(l.Quantity)
	}
	tax := (subtotal*TaxRateBP + 5000) / 10000
	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		GrandCents:    subtotal + tax,
	}
}
