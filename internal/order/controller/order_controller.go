package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
	"github.com/ruolez/EggsReserve/internal/order/transfer"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.OrderWithDetail, error)
	UpdateOrder(ctx context.Context, orderNumber string, req dto.UpdateOrderRequest) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderNumber string) error
	GetOrder(ctx context.Context, orderNumber string) (*domain.OrderWithDetail, error)
	ListOrders(ctx context.Context) ([]domain.OrderWithDetail, error)
}

type OrderImporter interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

type OrderController struct {
	useCase  OrderUseCase
	importer OrderImporter
	logger   *zap.Logger
}

func NewOrderController(useCase OrderUseCase, importer OrderImporter, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase:  useCase,
		importer: importer,
		logger:   logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON", nil)
		return
	}

	created, err := c.useCase.CreateOrder(r.Context(), req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created.Order, created.Detail), logger)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.useCase.ListOrders(r.Context())
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o.Order, o.Detail)
	}

	writeJSON(w, http.StatusOK, responses, c.logger)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := c.useCase.GetOrder(r.Context(), orderNumber)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order.Order, order.Detail), c.logger)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderNumber := chi.URLParam(r, "orderNumber")

	var req dto.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON", nil)
		return
	}

	updated, err := c.useCase.UpdateOrder(r.Context(), orderNumber, req)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(*updated, nil), logger)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	if err := c.useCase.DeleteOrder(r.Context(), orderNumber); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) Export(w http.ResponseWriter, r *http.Request) {
	orders, err := c.useCase.ListOrders(r.Context())
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	csvContent, err := transfer.ExportOrders(orders)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvContent)); err != nil {
		c.logger.Error("failed to write csv response", zap.Error(err))
	}
}

func (c *OrderController) Import(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	result, err := c.importer.Import(r.Context(), r.Body)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, result, logger)
}

func (c *OrderController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	// Insufficient stock gets its own code: the user's fix is to reduce the
	// quantity, not to retry.
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		writeError(w, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
		return
	}

	if ce, ok := apperrors.IsCompensationError(err); ok {
		logger.Error("compensation failure surfaced to client", zap.Error(ce))
		writeError(w, http.StatusInternalServerError, "INCONSISTENT_STATE", "operation failed; stock may need manual reconciliation", nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func toOrderResponse(order domain.Order, detail *domain.OrderDetail) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Phone:        order.Phone,
		Quantity:     order.Quantity,
		Status:       order.Status,
		IsFlagged:    order.IsFlagged,
		Total:        order.Total,
		CreatedAt:    order.CreatedAt,
	}

	if detail != nil {
		resp.Detail = &dto.OrderDetailResponse{
			Product: detail.Product,
			SKU:     detail.SKU,
			UPC:     detail.UPC,
			Qty:     detail.Qty,
			Sale:    detail.Sale,
			Cost:    detail.Cost,
		}
	}

	return resp
}

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details []apperrors.ValidationDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: code, Message: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
