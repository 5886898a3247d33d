package mysql

import (
	"context"
	"errors"
	"strings"

	"resto-pos-backend/internal/domain/staff"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetActiveByID(ctx context.Context, id uint64) (*staff.User, error) {
	var out staff.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("id = ? AND is_active = ?", id, true).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, staff.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListActiveByRoleNames matches role names case-insensitively.
func (r *UserRepository) ListActiveByRoleNames(ctx context.Context, roles []string) ([]staff.User, error) {
	var out []staff.User
	if len(roles) == 0 {
		return out, nil
	}
	lowered := make([]string, 0, len(roles))
	for _, role := range roles {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(role)))
	}
	err := r.db.WithContext(ctx).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.is_active = ? AND LOWER(roles.name) IN ?", true, lowered).
		Order("users.full_name ASC, users.id ASC").
		Find(&out).Error
	return out, err
}
