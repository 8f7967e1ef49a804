package order

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/order/controller"
	"github.com/ruolez/EggsReserve/internal/order/repository"
	"github.com/ruolez/EggsReserve/internal/order/service"
	"github.com/ruolez/EggsReserve/internal/order/transfer"
	"github.com/ruolez/EggsReserve/internal/order/usecase"
	productrepo "github.com/ruolez/EggsReserve/internal/product/repository"
	stockrepo "github.com/ruolez/EggsReserve/internal/stock/repository"
)

func NewModule(db *sql.DB, notifier usecase.OrderNotifier, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	stockRepo := stockrepo.NewMySQLStockRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	reconciliationSvc := service.NewReconciliationService(stockRepo, orderRepo, logger)
	orderUC := usecase.NewOrderUseCase(productRepo, reconciliationSvc, orderRepo, notifier, logger)
	importer := transfer.NewOrderImporter(orderRepo, logger)

	return controller.NewOrderController(orderUC, importer, logger)
}
