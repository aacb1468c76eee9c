package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Update carries the fields of a partial edit. Nil means "leave unchanged".
type Update struct {
	Title           *string
	EventDate       *time.Time
	EventType       *string
	CalculationType *CalculationType
	RepeatOption    *RepeatOption
	BackgroundImage *string
}

// Store is the event persistence collaborator. One method per operation;
// every write is scoped by the owning user id.
type Store interface {
	List(ctx context.Context, userID uint64, types []string) ([]Event, error)
	Create(ctx context.Context, e *Event) error
	CreateBatch(ctx context.Context, evs []*Event) error
	Update(ctx context.Context, id uuid.UUID, userID uint64, upd Update) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID, userID uint64) error
}

type GormStore struct {
	DB *gorm.DB
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) List(ctx context.Context, userID uint64, types []string) ([]Event, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if len(types) > 0 {
		q = q.Where("event_type = any(?)", pq.Array(types))
	}

	var rows []Event
	if err := q.Order("event_date desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) Create(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return s.DB.WithContext(ctx).Create(e).Error
}

// CreateBatch persists a batch of pending events in one transaction, so a
// post-login merge either lands fully or not at all.
func (s *GormStore) CreateBatch(ctx context.Context, evs []*Event) error {
	if len(evs) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range evs {
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, userID uint64, upd Update) (*Event, error) {
	changes := map[string]any{"updated_at": time.Now()}
	if upd.Title != nil {
		changes["title"] = *upd.Title
	}
	if upd.EventDate != nil {
		changes["event_date"] = *upd.EventDate
	}
	if upd.EventType != nil {
		changes["event_type"] = *upd.EventType
	}
	if upd.CalculationType != nil {
		changes["calculation_type"] = *upd.CalculationType
	}
	if upd.RepeatOption != nil {
		changes["repeat_option"] = *upd.RepeatOption
	}
	if upd.BackgroundImage != nil {
		changes["background_image"] = *upd.BackgroundImage
	}

	var out Event
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Event{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID, userID uint64) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
