package harvest

import (
	"database/sql"

	"go.uber.org/zap"

	cooprepo "github.com/ruolez/EggsReserve/internal/coop/repository"
	"github.com/ruolez/EggsReserve/internal/harvest/controller"
	"github.com/ruolez/EggsReserve/internal/harvest/repository"
	"github.com/ruolez/EggsReserve/internal/harvest/transfer"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.HarvestsController {
	harvestRepo := repository.NewMySQLHarvestRepository(db)
	coopRepo := cooprepo.NewMySQLCoopRepository(db)
	importer := transfer.NewHarvestImporter(coopRepo, harvestRepo, logger)

	return controller.NewHarvestsController(harvestRepo, importer, logger)
}
