package expense

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/expense/controller"
	"github.com/ruolez/EggsReserve/internal/expense/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ExpensesController {
	repo := repository.NewMySQLExpenseRepository(db)
	return controller.NewExpensesController(repo, logger)
}
