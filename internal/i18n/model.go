package i18n

import (
	"time"

	"github.com/google/uuid"
)

// Translation is one bilingual UI string, keyed by a dot path like
// "addEvent.calculationTypes.daysLeft".
type Translation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string    `gorm:"type:text;uniqueIndex;not null" json:"key"`
	Namespace   string    `gorm:"type:text;not null;default:'common'" json:"namespace"`
	ArabicText  string    `gorm:"type:text;not null" json:"arabic_text"`
	EnglishText string    `gorm:"type:text;not null" json:"english_text"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}
