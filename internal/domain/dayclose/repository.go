package dayclose

import (
	"context"
	"time"
)

type OpeningRepository interface {
	Create(ctx context.Context, o *DayOpening) error
	Save(ctx context.Context, o *DayOpening) error
	// ErrOpeningNotFound when absent
	FindByDateAndCashier(ctx context.Context, businessDate time.Time, cashierID uint64) (*DayOpening, error)
	ListByDate(ctx context.Context, businessDate time.Time) ([]DayOpening, error)
}

type CloseRepository interface {
	Create(ctx context.Context, c *DayClose) error
	// Save writes every column, guarded by the row version (ErrConcurrentModification on mismatch).
	Save(ctx context.Context, c *DayClose) error
	// ErrRecordNotFound when absent
	FindByID(ctx context.Context, id uint64) (*DayClose, error)
	FindByDateAndCashier(ctx context.Context, businessDate time.Time, cashierID uint64) (*DayClose, error)
	ListByDate(ctx context.Context, businessDate time.Time) ([]DayClose, error)
	// cashierID nil means every cashier
	ListByRange(ctx context.Context, from, to time.Time, cashierID *uint64) ([]DayClose, error)
}

type AuditRepository interface {
	Append(ctx context.Context, a *DayLockAudit) error
	// Latest returns (nil, nil) when the date has never been locked.
	Latest(ctx context.Context, businessDate time.Time) (*DayLockAudit, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]DayLockAudit, error)
}
