package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("invalid role")

type Service struct {
	DB *gorm.DB
}

// Get returns the user's current role, or nil when none is assigned.
func (s *Service) Get(ctx context.Context, userID uint64) (*UserRole, error) {
	var ur UserRole
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&ur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// HasRole implements auth.RoleChecker.
func (s *Service) HasRole(ctx context.Context, userID uint64, role string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Assign replaces the user's role. Prior rows are deleted in the same
// transaction, keeping the one-role-per-user invariant.
func (s *Service) Assign(ctx context.Context, userID uint64, r Role) (*UserRole, error) {
	if !r.Valid() {
		return nil, ErrInvalidRole
	}

	ur := UserRole{ID: uuid.New(), UserID: userID, Role: r}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&ur).Error
	})
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// Clear removes any role from the user.
func (s *Service) Clear(ctx context.Context, userID uint64) error {
	return s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&UserRole{}).Error
}
