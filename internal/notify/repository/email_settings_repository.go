package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
)

type MySQLEmailSettingsRepository struct {
	db *sql.DB
}

func NewMySQLEmailSettingsRepository(db *sql.DB) *MySQLEmailSettingsRepository {
	return &MySQLEmailSettingsRepository{db: db}
}

// Get returns the singleton settings row, or unconfigured defaults when the
// row is missing. Notifications treat unconfigured settings as "skip", so a
// missing row is not an error here.
func (r *MySQLEmailSettingsRepository) Get(ctx context.Context) (*domain.EmailSettings, error) {
	query := `
		SELECT smtp_host, smtp_port, smtp_user, smtp_password, notification_email, updated_at
		FROM email_settings
		WHERE id = ?
	`

	var s domain.EmailSettings
	err := r.db.QueryRowContext(ctx, query, domain.EmailSettingsRowID).Scan(
		&s.SMTPHost, &s.SMTPPort, &s.SMTPUser, &s.SMTPPassword, &s.NotificationEmail, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return &domain.EmailSettings{SMTPPort: 587}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying email settings: %w", err)
	}

	return &s, nil
}

func (r *MySQLEmailSettingsRepository) Upsert(ctx context.Context, s *domain.EmailSettings) (*domain.EmailSettings, error) {
	query := `
		INSERT INTO email_settings (id, smtp_host, smtp_port, smtp_user, smtp_password, notification_email)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			smtp_host = VALUES(smtp_host),
			smtp_port = VALUES(smtp_port),
			smtp_user = VALUES(smtp_user),
			smtp_password = VALUES(smtp_password),
			notification_email = VALUES(notification_email)
	`

	_, err := r.db.ExecContext(ctx, query,
		domain.EmailSettingsRowID, s.SMTPHost, s.SMTPPort, s.SMTPUser, s.SMTPPassword, s.NotificationEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting email settings: %w", err)
	}

	return r.Get(ctx)
}
