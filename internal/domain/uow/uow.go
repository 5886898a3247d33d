package uow

import (
	"context"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"
	"resto-pos-backend/internal/domain/staff"
)

// Repos bundles repositories bound to the same connection or transaction.
type Repos struct {
	Openings dayclose.OpeningRepository
	Closes   dayclose.CloseRepository
	Audits   dayclose.AuditRepository
	Users    staff.Repository
	Ledger   ledger.Reader
}

type UnitOfWork interface {
	// tx that first takes the business_date_guards row lock for the date, serialising every
	// declare/approve/lock/reopen on that date
	WithinDateTx(ctx context.Context, businessDate time.Time, fn func(r Repos) error) error
}
