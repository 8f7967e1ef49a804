package product

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/product/controller"
	"github.com/ruolez/EggsReserve/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ProductsController {
	repo := repository.NewMySQLProductRepository(db)
	return controller.NewProductsController(repo, logger)
}
