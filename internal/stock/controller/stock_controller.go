package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
)

type StockService interface {
	GetStock(ctx context.Context) (*domain.Stock, error)
	SetStock(ctx context.Context, newQuantity int) (*domain.Stock, error)
}

type StockController struct {
	service StockService
	logger  *zap.Logger
}

func NewStockController(service StockService, logger *zap.Logger) *StockController {
	return &StockController{service: service, logger: logger}
}

func (c *StockController) Get(w http.ResponseWriter, r *http.Request) {
	stock, err := c.service.GetStock(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toStockResponse(stock))
}

func (c *StockController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": "request body must be valid JSON"})
		return
	}

	stock, err := c.service.SetStock(r.Context(), req.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toStockResponse(stock))
}

func toStockResponse(stock *domain.Stock) dto.StockResponse {
	return dto.StockResponse{
		CurrentQuantity: stock.CurrentQuantity,
		MaxQuantity:     stock.MaxQuantity,
		UpdatedAt:       stock.UpdatedAt,
	}
}

func (c *StockController) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": err.Error()})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *StockController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
