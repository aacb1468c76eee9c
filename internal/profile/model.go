package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the 1:1 public-facing record for a user account.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Username    *string   `gorm:"type:text;uniqueIndex" json:"username,omitempty"`
	DisplayName *string   `gorm:"type:text" json:"display_name,omitempty"`
	Bio         *string   `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}
