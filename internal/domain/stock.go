package domain

import "time"

// Stock is the single shared inventory register. One row by convention,
// keyed by StockRowID.
type Stock struct {
	ID              int
	CurrentQuantity int
	MaxQuantity     int
	UpdatedAt       time.Time
}

const StockRowID = 1

func (s Stock) InRange(quantity int) bool {
	return quantity >= 0 && quantity <= s.MaxQuantity
}
