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

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productRequest struct {
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"salePrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SKU       *string         `json:"sku"`
	UPC       *string         `json:"upc"`
}

type productResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"salePrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SKU       *string         `json:"sku"`
	UPC       *string         `json:"upc"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ProductsController struct {
	repo   ProductRepository
	logger *zap.Logger
}

func NewProductsController(repo ProductRepository, logger *zap.Logger) *ProductsController {
	return &ProductsController{repo: repo, logger: logger}
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.repo.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]productResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	c.writeJSON(w, http.StatusOK, responses)
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}
	if req.Name == "" {
		c.writeValidation(w, "name is required")
		return
	}

	created, err := c.repo.Create(r.Context(), &domain.Product{
		Name:      req.Name,
		SalePrice: req.SalePrice,
		CostPrice: req.CostPrice,
		SKU:       req.SKU,
		UPC:       req.UPC,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toProductResponse(*created))
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidation(w, "id must be an integer")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	updated, err := c.repo.Update(r.Context(), &domain.Product{
		ID:        id,
		Name:      req.Name,
		SalePrice: req.SalePrice,
		CostPrice: req.CostPrice,
		SKU:       req.SKU,
		UPC:       req.UPC,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductResponse(*updated))
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
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

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		SalePrice: p.SalePrice,
		CostPrice: p.CostPrice,
		SKU:       p.SKU,
		UPC:       p.UPC,
		CreatedAt: p.CreatedAt,
	}
}

func (c *ProductsController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": err.Error()})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *ProductsController) writeValidation(w http.ResponseWriter, message string) {
	c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": message})
}

func (c *ProductsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
