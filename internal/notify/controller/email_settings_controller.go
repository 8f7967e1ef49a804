package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruolez/EggsReserve/internal/domain"
)

type EmailSettingsRepository interface {
	Get(ctx context.Context) (*domain.EmailSettings, error)
	Upsert(ctx context.Context, s *domain.EmailSettings) (*domain.EmailSettings, error)
}

type emailSettingsPayload struct {
	SMTPHost          string `json:"smtpHost"`
	SMTPPort          int    `json:"smtpPort"`
	SMTPUser          string `json:"smtpUser"`
	SMTPPassword      string `json:"smtpPassword,omitempty"`
	NotificationEmail string `json:"notificationEmail"`
}

type EmailSettingsController struct {
	repo   EmailSettingsRepository
	logger *zap.Logger
}

func NewEmailSettingsController(repo EmailSettingsRepository, logger *zap.Logger) *EmailSettingsController {
	return &EmailSettingsController{repo: repo, logger: logger}
}

func (c *EmailSettingsController) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := c.repo.Get(r.Context())
	if err != nil {
		c.writeInternal(w, err)
		return
	}

	// Password stays server-side.
	c.writeJSON(w, http.StatusOK, emailSettingsPayload{
		SMTPHost:          settings.SMTPHost,
		SMTPPort:          settings.SMTPPort,
		SMTPUser:          settings.SMTPUser,
		NotificationEmail: settings.NotificationEmail,
	})
}

func (c *EmailSettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var req emailSettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "VALIDATION_ERROR", "message": "request body must be valid JSON"})
		return
	}

	if req.SMTPPort == 0 {
		req.SMTPPort = 587
	}

	updated, err := c.repo.Upsert(r.Context(), &domain.EmailSettings{
		SMTPHost:          req.SMTPHost,
		SMTPPort:          req.SMTPPort,
		SMTPUser:          req.SMTPUser,
		SMTPPassword:      req.SMTPPassword,
		NotificationEmail: req.NotificationEmail,
	})
	if err != nil {
		c.writeInternal(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, emailSettingsPayload{
		SMTPHost:          updated.SMTPHost,
		SMTPPort:          updated.SMTPPort,
		SMTPUser:          updated.SMTPUser,
		NotificationEmail: updated.NotificationEmail,
	})
}

func (c *EmailSettingsController) writeInternal(w http.ResponseWriter, err error) {
	c.logger.Error("email settings operation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "INTERNAL_ERROR", "message": "an unexpected error occurred"})
}

func (c *EmailSettingsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
