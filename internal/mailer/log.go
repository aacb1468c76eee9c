package mailer

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// EmailLog tracks one outbound email from enqueue to delivery. The HTML body
// rides along so the dispatch worker needs nothing but the log row.
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uint64    `gorm:"index;not null" json:"user_id"`
	RecipientEmail string    `gorm:"type:text;not null" json:"recipient_email"`
	Subject        string    `gorm:"type:text;not null" json:"subject"`
	Body           string    `gorm:"type:text;not null" json:"-"`
	SentAt         time.Time `gorm:"type:timestamptz;not null;default:now()" json:"sent_at"`
	Status         string    `gorm:"type:text;not null;default:'queued'" json:"status"`
	ErrorMessage   *string   `gorm:"type:text" json:"error_message,omitempty"`
}
