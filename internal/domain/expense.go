package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        int64
	Name      string
	Quantity  int
	Cost      decimal.Decimal
	Date      time.Time
	TotalCost decimal.Decimal
	CreatedAt time.Time
}
