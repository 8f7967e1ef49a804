package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	apperrors "github.com/ruolez/EggsReserve/internal/errors"
	"github.com/ruolez/EggsReserve/internal/harvest/repository"
	"github.com/ruolez/EggsReserve/internal/harvest/service"
	"github.com/ruolez/EggsReserve/internal/harvest/transfer"
)

type HarvestRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Harvest, error)
	List(ctx context.Context, filter repository.HarvestFilter) ([]domain.Harvest, error)
	Create(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error)
	Update(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error)
	Delete(ctx context.Context, id int64) error
}

type HarvestImporter interface {
	Import(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

type harvestRequest struct {
	CoopID         int64   `json:"coopId"`
	EggsCollected  int     `json:"eggsCollected"`
	CollectionDate string  `json:"collectionDate"`
	Notes          *string `json:"notes"`
}

type harvestResponse struct {
	ID             int64   `json:"id"`
	CoopID         int64   `json:"coopId"`
	CoopName       string  `json:"coopName"`
	EggsCollected  int     `json:"eggsCollected"`
	CollectionDate string  `json:"collectionDate"`
	Notes          *string `json:"notes"`
}

type HarvestsController struct {
	repo     HarvestRepository
	importer HarvestImporter
	logger   *zap.Logger
}

func NewHarvestsController(repo HarvestRepository, importer HarvestImporter, logger *zap.Logger) *HarvestsController {
	return &HarvestsController{repo: repo, importer: importer, logger: logger}
}

func (c *HarvestsController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	harvests, err := c.repo.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	responses := make([]harvestResponse, len(harvests))
	for i, h := range harvests {
		responses[i] = toHarvestResponse(h)
	}
	c.writeJSON(w, http.StatusOK, responses)
}

func (c *HarvestsController) Statistics(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	harvests, err := c.repo.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, service.ComputeStatistics(harvests))
}

func (c *HarvestsController) Create(w http.ResponseWriter, r *http.Request) {
	var req harvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	harvest, err := harvestFromRequest(req, 0)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	created, err := c.repo.Create(r.Context(), harvest)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toHarvestResponse(*created))
}

func (c *HarvestsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.writeValidation(w, "id must be an integer")
		return
	}

	var req harvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidation(w, "request body must be valid JSON")
		return
	}

	harvest, err := harvestFromRequest(req, id)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	updated, err := c.repo.Update(r.Context(), harvest)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, toHarvestResponse(*updated))
}

func (c *HarvestsController) Delete(w http.ResponseWriter, r *http.Request) {
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

func (c *HarvestsController) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		c.writeValidation(w, err.Error())
		return
	}

	harvests, err := c.repo.List(r.Context(), filter)
	if err != nil {
		c.handleError(w, err)
		return
	}

	csvContent, err := transfer.Export(harvests)
	if err != nil {
		c.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="harvests.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvContent)); err != nil {
		c.logger.Error("failed to write csv response", zap.Error(err))
	}
}

func (c *HarvestsController) Import(w http.ResponseWriter, r *http.Request) {
	result, err := c.importer.Import(r.Context(), r.Body)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request) (repository.HarvestFilter, error) {
	var filter repository.HarvestFilter

	if raw := r.URL.Query().Get("coopId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("coopId must be an integer")
		}
		filter.CoopID = &id
	}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, apperrors.NewValidationError("startDate must be YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, apperrors.NewValidationError("endDate must be YYYY-MM-DD")
		}
		filter.EndDate = &end
	}

	return filter, nil
}

func harvestFromRequest(req harvestRequest, id int64) (*domain.Harvest, error) {
	if req.CoopID == 0 {
		return nil, apperrors.NewValidationError("coopId is required")
	}
	if req.EggsCollected < 0 {
		return nil, apperrors.NewValidationError("eggsCollected must not be negative")
	}

	collectionDate := time.Now().UTC()
	if req.CollectionDate != "" {
		parsed, err := time.Parse("2006-01-02", req.CollectionDate)
		if err != nil {
			return nil, apperrors.NewValidationError("collectionDate must be YYYY-MM-DD")
		}
		collectionDate = parsed
	}

	return &domain.Harvest{
		ID:             id,
		CoopID:         req.CoopID,
		EggsCollected:  req.EggsCollected,
		CollectionDate: collectionDate,
		Notes:          req.Notes,
	}, nil
}

func toHarvestResponse(h domain.Harvest) harvestResponse {
	return harvestResponse{
		ID:             h.ID,
		CoopID:         h.CoopID,
		CoopName:       h.CoopName,
		EggsCollected:  h.EggsCollected,
		CollectionDate: h.CollectionDate.Format("2006-01-02"),
		Notes:          h.Notes,
	}
}

func (c *HarvestsController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": err.Error()})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *HarvestsController) writeValidation(w http.ResponseWriter, message string) {
	c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": message})
}

func (c *HarvestsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
