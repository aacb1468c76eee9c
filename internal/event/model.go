package event

import (
	"time"

	"github.com/google/uuid"
)

type RepeatOption string

const (
	RepeatNone    RepeatOption = "none"
	RepeatDaily   RepeatOption = "daily"
	RepeatWeekly  RepeatOption = "weekly"
	RepeatMonthly RepeatOption = "monthly"
	RepeatYearly  RepeatOption = "yearly"
)

func (r RepeatOption) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Event is a user-owned countdown entry. RepeatOption is stored for display
// only; nothing rewrites EventDate when an event expires.
type Event struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uint64          `gorm:"index;not null" json:"user_id"`
	Title           string          `gorm:"type:text;not null" json:"title"`
	EventDate       time.Time       `gorm:"type:timestamptz;not null;index" json:"event_date"`
	EventType       string          `gorm:"type:text;not null;default:'countdown'" json:"event_type"`
	CalculationType CalculationType `gorm:"type:text;not null;default:'days-left'" json:"calculation_type"`
	RepeatOption    RepeatOption    `gorm:"type:text;not null;default:'none'" json:"repeat_option"`
	BackgroundImage *string         `gorm:"type:text" json:"background_image,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}
