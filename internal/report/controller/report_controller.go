package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/dto"
	harvestrepo "github.com/ruolez/EggsReserve/internal/harvest/repository"
	harvestsvc "github.com/ruolez/EggsReserve/internal/harvest/service"
	"github.com/ruolez/EggsReserve/internal/report/service"
)

type OrderSource interface {
	ListWithDetails(ctx context.Context) ([]domain.OrderWithDetail, error)
}

type ExpenseSource interface {
	List(ctx context.Context) ([]domain.Expense, error)
}

type HarvestSource interface {
	List(ctx context.Context, filter harvestrepo.HarvestFilter) ([]domain.Harvest, error)
}

type businessReport struct {
	Metrics            dto.BusinessMetrics `json:"metrics"`
	ExpensesByCategory []dto.CategoryTotal `json:"expensesByCategory"`
	OrdersByMonth      []dto.MonthTotal    `json:"ordersByMonth"`
}

type ReportController struct {
	orders   OrderSource
	expenses ExpenseSource
	harvests HarvestSource
	logger   *zap.Logger
}

func NewReportController(orders OrderSource, expenses ExpenseSource, harvests HarvestSource, logger *zap.Logger) *ReportController {
	return &ReportController{
		orders:   orders,
		expenses: expenses,
		harvests: harvests,
		logger:   logger,
	}
}

func (c *ReportController) Business(w http.ResponseWriter, r *http.Request) {
	ordersWithDetails, err := c.orders.ListWithDetails(r.Context())
	if err != nil {
		c.writeInternal(w, err)
		return
	}

	expenses, err := c.expenses.List(r.Context())
	if err != nil {
		c.writeInternal(w, err)
		return
	}

	harvests, err := c.harvests.List(r.Context(), harvestrepo.HarvestFilter{})
	if err != nil {
		c.writeInternal(w, err)
		return
	}

	orders := make([]domain.Order, len(ordersWithDetails))
	for i, o := range ordersWithDetails {
		orders[i] = o.Order
	}

	harvestStats := harvestsvc.ComputeStatistics(harvests)

	report := businessReport{
		Metrics:            service.ComputeBusinessMetrics(orders, expenses, harvestStats.TotalEggs),
		ExpensesByCategory: service.ExpensesByCategory(expenses),
		OrdersByMonth:      service.OrdersByMonth(orders),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (c *ReportController) writeInternal(w http.ResponseWriter, err error) {
	c.logger.Error("report generation failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}
