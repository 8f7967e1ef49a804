package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           int64
	OrderNumber  string
	CustomerName string
	Email        string
	Phone        string
	Quantity     int
	Status       string
	IsFlagged    bool
	Total        decimal.Decimal
	CreatedAt    time.Time
}

const (
	OrderStatusPending  = "pending"
	OrderStatusComplete = "complete"
)

// OrderDetail is the priced line item snapshot attached 1:1 to an Order.
// Product identity and prices are copied at order time so historical orders
// stay accurate when the catalog changes.
type OrderDetail struct {
	ID      int64
	OrderID int64
	Product string
	SKU     string
	UPC     string
	Qty     int
	Sale    decimal.Decimal
	Cost    decimal.Decimal
}

type OrderWithDetail struct {
	Order
	Detail *OrderDetail
}

// OrderTotal derives the order total from the unit sale price snapshot.
func OrderTotal(sale decimal.Decimal, quantity int) decimal.Decimal {
	return sale.Mul(decimal.NewFromInt(int64(quantity)))
}

func ValidOrderStatus(status string) bool {
	return status == OrderStatusPending || status == OrderStatusComplete
}
