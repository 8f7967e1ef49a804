package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
)

type CoopRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Coop, error)
	List(ctx context.Context) ([]domain.Coop, error)
	Create(ctx context.Context, c *domain.Coop) (*domain.Coop, error)
	Update(ctx context.Context, c *domain.Coop) (*domain.Coop, error)
	Delete(ctx context.Context, id int64) error
}

type coopRequest struct {
	Name       string `json:"name"`
	NumBirds   int    `json:"numBirds"`
	HasRooster bool   `json:"hasRooster"`
}

type coopResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	NumBirds   int       `json:"numBirds"`
	HasRooster bool      `json:"hasRooster"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CoopsController struct {
	repo   CoopRepository
	logger *zap.Logger
}

func NewCoopsController(repo CoopRepository, logger *zap.Logger) *CoopsController {
	return &CoopsController{repo: repo, logger: logger}
}

func (c *CoopsController) List(w http.ResponseWriter, r *http.Request) {
	coops, err := c.repo.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]coopResponse, len(coops))
	for i, coop := range coops {
		responses[i] = toCoopResponse(coop)
	}
	c.writeJSON(w, http.StatusOK, responses)
}

func (c *CoopsController) Create(w http.ResponseWriter, r *http.Request) {
	var req coopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}
	if req.Name == "" {
		c.writeValidation(w, "name is required")
		return
	}

	created, err := c.repo.Create(r.Context(), &domain.Coop{
		Name:       req.Name,
		NumBirds:   req.NumBirds,
		HasRooster: req.HasRooster,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toCoopResponse(*created))
}

func (c *CoopsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidation(w, "id must be an integer")
		return
	}

	var req coopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	updated, err := c.repo.Update(r.Context(), &domain.Coop{
		ID:         id,
		Name:       req.Name,
		NumBirds:   req.NumBirds,
		HasRooster: req.HasRooster,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toCoopResponse(*updated))
}

func (c *CoopsController) Delete(w http.ResponseWriter, r *http.Request) {
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

func toCoopResponse(c domain.Coop) coopResponse {
	return coopResponse{
		ID:         c.ID,
		Name:       c.Name,
		NumBirds:   c.NumBirds,
		HasRooster: c.HasRooster,
		CreatedAt:  c.CreatedAt,
	}
}

func (c *CoopsController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": err.Error()})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *CoopsController) writeValidation(w http.ResponseWriter, message string) {
	c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": message})
}

func (c *CoopsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
