package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64
	Name      string
	SalePrice decimal.Decimal
	CostPrice decimal.Decimal
	SKU       *string
	UPC       *string
	CreatedAt time.Time
}

// DefaultProductName is the catalog entry reserved on the storefront path.
const DefaultProductName = "Carton of eggs"
