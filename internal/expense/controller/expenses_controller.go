package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
)

type ExpenseRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id int64) error
}

type expenseRequest struct {
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	Cost      decimal.Decimal  `json:"cost"`
	Date      string           `json:"date"`
	TotalCost *decimal.Decimal `json:"totalCost"`
}

type expenseResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Date      string          `json:"date"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

type ExpensesController struct {
	repo   ExpenseRepository
	logger *zap.Logger
}

func NewExpensesController(repo ExpenseRepository, logger *zap.Logger) *ExpensesController {
	return &ExpensesController{repo: repo, logger: logger}
}

func (c *ExpensesController) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := c.repo.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = toExpenseResponse(e)
	}
	c.writeJSON(w, http.StatusOK, responses)
}

func (c *ExpensesController) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	expense, err := expenseFromRequest(req, 0)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	created, err := c.repo.Create(r.Context(), expense)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toExpenseResponse(*created))
}

func (c *ExpensesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidation(w, "id must be an integer")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	expense, err := expenseFromRequest(req, id)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	updated, err := c.repo.Update(r.Context(), expense)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toExpenseResponse(*updated))
}

func (c *ExpensesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidation(w, "id must be an integer")
		return
	}

	if err := c.repo.Delete(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func expenseFromRequest(req expenseRequest, id int64) (*domain.Expense, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	// Total defaults to quantity x unit cost when not supplied explicitly.
	totalCost := req.Cost.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.TotalCost != nil {
		totalCost = *req.TotalCost
	}

	return &domain.Expense{
		ID:        id,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Cost:      req.Cost,
		Date:      date,
		TotalCost: totalCost,
	}, nil
}

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Quantity:  e.Quantity,
		Cost:      e.Cost,
		Date:      e.Date.Format("2006-01-02"),
		TotalCost: e.TotalCost,
	}
}

func (c *ExpensesController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": err.Error()})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *ExpensesController) writeValidation(w http.ResponseWriter, message string) {
	c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": message})
}

func (c *ExpensesController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
