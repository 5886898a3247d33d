package dayclosemock

import (
	"context"
	"errors"
	"time"

	domain "resto-pos-backend/internal/domain/dayclose"
)

var (
	_ domain.OpeningRepository = (*Openings)(nil)
	_ domain.CloseRepository   = (*Closes)(nil)
	_ domain.AuditRepository   = (*Audits)(nil)
)

var errUnimplemented = errors.New("dayclosemock: method not implemented")

// Openings is a function-backed mock of domain.OpeningRepository.
// Writes default to success, reads to errUnimplemented.
type Openings struct {
	CreateFn               func(ctx context.Context, o *domain.DayOpening) error
	SaveFn                 func(ctx context.Context, o *domain.DayOpening) error
	FindByDateAndCashierFn func(ctx context.Context, date time.Time, cashierID uint64) (*domain.DayOpening, error)
	ListByDateFn           func(ctx context.Context, date time.Time) ([]domain.DayOpening, error)
}

func (m *Openings) Create(ctx context.Context, o *domain.DayOpening) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Openings) Save(ctx context.Context, o *domain.DayOpening) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Openings) FindByDateAndCashier(ctx context.Context, date time.Time, cashierID uint64) (*domain.DayOpening, error) {
	if m.FindByDateAndCashierFn != nil {
		return m.FindByDateAndCashierFn(ctx, date, cashierID)
	}
	return nil, errUnimplemented
}

func (m *Openings) ListByDate(ctx context.Context, date time.Time) ([]domain.DayOpening, error) {
	if m.ListByDateFn != nil {
		return m.ListByDateFn(ctx, date)
	}
	return nil, errUnimplemented
}

// Closes is a function-backed mock of domain.CloseRepository.
type Closes struct {
	CreateFn               func(ctx context.Context, c *domain.DayClose) error
	SaveFn                 func(ctx context.Context, c *domain.DayClose) error
	FindByIDFn             func(ctx context.Context, id uint64) (*domain.DayClose, error)
	FindByDateAndCashierFn func(ctx context.Context, date time.Time, cashierID uint64) (*domain.DayClose, error)
	ListByDateFn           func(ctx context.Context, date time.Time) ([]domain.DayClose, error)
	ListByRangeFn          func(ctx context.Context, from, to time.Time, cashierID *uint64) ([]domain.DayClose, error)
}

func (m *Closes) Create(ctx context.Context, c *domain.DayClose) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Closes) Save(ctx context.Context, c *domain.DayClose) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Closes) FindByID(ctx context.Context, id uint64) (*domain.DayClose, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Closes) FindByDateAndCashier(ctx context.Context, date time.Time, cashierID uint64) (*domain.DayClose, error) {
	if m.FindByDateAndCashierFn != nil {
		return m.FindByDateAndCashierFn(ctx, date, cashierID)
	}
	return nil, errUnimplemented
}

func (m *Closes) ListByDate(ctx context.Context, date time.Time) ([]domain.DayClose, error) {
	if m.ListByDateFn != nil {
		return m.ListByDateFn(ctx, date)
	}
	return nil, errUnimplemented
}

func (m *Closes) ListByRange(ctx context.Context, from, to time.Time, cashierID *uint64) ([]domain.DayClose, error) {
	if m.ListByRangeFn != nil {
		return m.ListByRangeFn(ctx, from, to, cashierID)
	}
	return nil, errUnimplemented
}

// Audits is a function-backed mock of domain.AuditRepository.
type Audits struct {
	AppendFn      func(ctx context.Context, a *domain.DayLockAudit) error
	LatestFn      func(ctx context.Context, date time.Time) (*domain.DayLockAudit, error)
	ListByRangeFn func(ctx context.Context, from, to time.Time) ([]domain.DayLockAudit, error)
}

func (m *Audits) Append(ctx context.Context, a *domain.DayLockAudit) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, a)
	}
	return nil
}

// Latest defaults to "never locked".
func (m *Audits) Latest(ctx context.Context, date time.Time) (*domain.DayLockAudit, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ctx, date)
	}
	return nil, nil
}

func (m *Audits) ListByRange(ctx context.Context, from, to time.Time) ([]domain.DayLockAudit, error) {
	if m.ListByRangeFn != nil {
		return m.ListByRangeFn(ctx, from, to)
	}
	return nil, errUnimplemented
}
