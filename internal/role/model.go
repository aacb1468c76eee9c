package role

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	Admin     Role = "admin"
	Moderator Role = "moderator"
	User      Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case Admin, Moderator, User:
		return true
	}
	return false
}

// UserRole records the single active role of a user. Assignment replaces any
// prior row, so a user never holds two roles at once.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	Role      Role      `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}
