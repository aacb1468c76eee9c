package media

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationLog records one image generation attempt. Besides auditing, the
// rows drive the per-user rate limit.
type GenerationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint64    `gorm:"index;not null" json:"user_id"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	GeneratedAt  time.Time `gorm:"type:timestamptz;not null;default:now();index" json:"generated_at"`
	Status       string    `gorm:"type:text;not null;default:'success'" json:"status"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
}

const (
	generationsPerWindow = 5
	rateWindow           = time.Hour
)

type LogStore struct {
	DB *gorm.DB
}

// AllowGeneration reports whether the user is under the hourly generation cap.
func (s *LogStore) AllowGeneration(ctx context.Context, userID uint64, now time.Time) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&GenerationLog{}).
		Where("user_id = ? AND generated_at >= ?", userID, now.Add(-rateWindow)).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n < generationsPerWindow, nil
}

func (s *LogStore) Record(ctx context.Context, userID uint64, prompt, status string, errMsg *string) error {
	return s.DB.WithContext(ctx).Create(&GenerationLog{
		ID:           uuid.New(),
		UserID:       userID,
		Prompt:       prompt,
		GeneratedAt:  time.Now(),
		Status:       status,
		ErrorMessage: errMsg,
	}).Error
}
