package coop

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/coop/controller"
	"github.com/ruolez/EggsReserve/internal/coop/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CoopsController {
	repo := repository.NewMySQLCoopRepository(db)
	return controller.NewCoopsController(repo, logger)
}
