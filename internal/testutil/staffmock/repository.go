package staffmock

import (
	"context"

	domain "resto-pos-backend/internal/domain/staff"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock of domain.Repository. Unset lookups report not found.
type Repo struct {
	GetActiveByIDFn         func(ctx context.Context, id uint64) (*domain.User, error)
	ListActiveByRoleNamesFn func(ctx context.Context, roles []string) ([]domain.User, error)
}

func (m *Repo) GetActiveByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetActiveByIDFn != nil {
		return m.GetActiveByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListActiveByRoleNames(ctx context.Context, roles []string) ([]domain.User, error) {
	if m.ListActiveByRoleNamesFn != nil {
		return m.ListActiveByRoleNamesFn(ctx, roles)
	}
	return nil, nil
}
