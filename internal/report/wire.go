package report

import (
	"database/sql"

	"go.uber.org/zap"

	expenserepo "github.com/ruolez/EggsReserve/internal/expense/repository"
	harvestrepo "github.com/ruolez/EggsReserve/internal/harvest/repository"
	orderrepo "github.com/ruolez/EggsReserve/internal/order/repository"
	"github.com/ruolez/EggsReserve/internal/report/controller"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ReportController {
	return controller.NewReportController(
		orderrepo.NewMySQLOrderRepository(db),
		expenserepo.NewMySQLExpenseRepository(db),
		harvestrepo.NewMySQLHarvestRepository(db),
		logger,
	)
}
