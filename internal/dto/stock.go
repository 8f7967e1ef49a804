package dto

import "time"

type StockResponse struct {
	CurrentQuantity int       `json:"currentQuantity"`
	MaxQuantity     int       `json:"maxQuantity"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type UpdateStockRequest struct {
	Quantity int `json:"quantity"`
}
