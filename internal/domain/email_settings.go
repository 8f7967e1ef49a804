package domain

import "time"

// EmailSettings is a singleton row (id = EmailSettingsRowID) holding the
// SMTP credentials for order notifications.
type EmailSettings struct {
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	NotificationEmail string
	UpdatedAt         time.Time
}

const EmailSettingsRowID = 1

// Configured reports whether the settings are complete enough to attempt a
// send. Unconfigured settings mean notifications are skipped, not failed.
func (s EmailSettings) Configured() bool {
	return s.SMTPHost != "" && s.NotificationEmail != ""
}
