package stock

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/stock/controller"
	"github.com/ruolez/EggsReserve/internal/stock/repository"
	"github.com/ruolez/EggsReserve/internal/stock/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*controller.StockController, *service.StockService) {
	stockRepo := repository.NewMySQLStockRepository(db)
	stockSvc := service.NewStockService(stockRepo, logger)
	return controller.NewStockController(stockSvc, logger), stockSvc
}
