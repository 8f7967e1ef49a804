package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Quantity     int    `json:"quantity"`
	Product      string `json:"product,omitempty"`
}

// UpdateOrderRequest carries the admin-editable fields. Each field is
// independently optional; only non-nil fields are applied.
type UpdateOrderRequest struct {
	Status    *string `json:"status,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	IsFlagged *bool   `json:"isFlagged,omitempty"`
}

type OrderResponse struct {
	OrderNumber  string               `json:"orderNumber"`
	CustomerName string               `json:"customerName"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Quantity     int                  `json:"quantity"`
	Status       string               `json:"status"`
	IsFlagged    bool                 `json:"isFlagged"`
	Total        decimal.Decimal      `json:"total"`
	CreatedAt    time.Time            `json:"createdAt"`
	Detail       *OrderDetailResponse `json:"detail,omitempty"`
}

type OrderDetailResponse struct {
	Product string          `json:"product"`
	SKU     string          `json:"sku"`
	UPC     string          `json:"upc"`
	Qty     int             `json:"qty"`
	Sale    decimal.Decimal `json:"sale"`
	Cost    decimal.Decimal `json:"cost"`
}
