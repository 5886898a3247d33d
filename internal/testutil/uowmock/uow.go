package uowmock

import (
	"context"
	"errors"
	"time"

	"resto-pos-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinDateTxFn func(ctx context.Context, businessDate time.Time, fn func(r uow.Repos) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every tx body directly against repos, with no transaction.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinDateTxFn: func(_ context.Context, _ time.Time, fn func(uow.Repos) error) error {
			return fn(repos)
		},
	}
}

func (m *UoW) WithWithinDateTx(fn func(context.Context, time.Time, func(uow.Repos) error) error) *UoW {
	m.WithinDateTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinDateTx(ctx context.Context, businessDate time.Time, fn func(r uow.Repos) error) error {
	if m.WithinDateTxFn != nil {
		return m.WithinDateTxFn(ctx, businessDate, fn)
	}
	return errUnimplemented
}
