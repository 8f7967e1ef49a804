package notify

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/notify/controller"
	"github.com/ruolez/EggsReserve/internal/notify/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*controller.EmailSettingsController, *EmailNotifier) {
	settingsRepo := repository.NewMySQLEmailSettingsRepository(db)
	notifier := NewEmailNotifier(settingsRepo, SMTPSender{}, logger)

	return controller.NewEmailSettingsController(settingsRepo, logger), notifier
}
