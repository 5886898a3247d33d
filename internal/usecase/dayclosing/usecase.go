package dayclosing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/staff"
	"resto-pos-backend/internal/domain/uow"
	"resto-pos-backend/internal/infrastructure/logging"
	"resto-pos-backend/internal/usecase/report"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const moduleName = "dayclosing"

const (
	maxActorLen   = 64
	maxCommentLen = 500
)

// DateLocker serializes closing work on one business date across processes.
type DateLocker interface {
	Lock(ctx context.Context, businessDate time.Time) (release func(), err error)
}

// Reporter builds the multi-day cash closing report.
type Reporter interface {
	CashClosingReport(ctx context.Context, in report.Input) (*report.CashClosingReport, error)
}

type Usecase struct {
	repos    uow.Repos
	uow      uow.UnitOfWork
	policy   Policy
	locker   DateLocker
	reporter Reporter
	log      *logrus.Logger
	now      func() time.Time
}

type Option func(*Usecase)

// WithDateLocker adds a distributed lock in front of the date transaction.
func WithDateLocker(l DateLocker) Option { return func(u *Usecase) { u.locker = l } }

func WithReporter(r Reporter) Option { return func(u *Usecase) { u.reporter = r } }

func WithLogger(l *logrus.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// NewUsecase: repos serve plain reads, tx runs every write.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, policy Policy, opts ...Option) *Usecase {
	u := &Usecase{
		repos:  repos,
		uow:    tx,
		policy: policy,
		log:    logging.Discard(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.reporter == nil {
		u.reporter = report.NewProjector(repos.Closes, repos.Audits, policy.Tolerance, 0)
	}
	return u
}

func success(msg string) Result {
	return Result{Success: true, Code: dayclose.CodeOK, Message: msg}
}

// failure turns err into a Result. Infrastructure errors are logged and hidden from the caller.
func (u *Usecase) failure(funcName string, data any, err error) Result {
	code := dayclose.CodeOf(err)
	if code == dayclose.CodeInternal {
		logging.LogError(u.log, moduleName, funcName, "operation failed", data, err)
		return Result{Code: code, Message: "internal error, please try again"}
	}
	return Result{Code: code, Message: err.Error()}
}

// withinDate runs fn in the date-scoped transaction, behind the distributed lock when one is
// configured. An unreachable lock backend falls back to the row lock alone.
func (u *Usecase) withinDate(ctx context.Context, date time.Time, fn func(r uow.Repos) error) error {
	if u.locker != nil {
		release, err := u.locker.Lock(ctx, date)
		switch {
		case err == nil:
			defer release()
		case errors.Is(err, dayclose.ErrDateBusy):
			return err
		default:
			u.log.WithFields(logrus.Fields{
				"module":        moduleName,
				"business_date": date.Format(dayclose.DateLayout),
				"error":         err.Error(),
			}).Warn("date lock unavailable, continuing with row lock only")
		}
	}
	return u.uow.WithinDateTx(ctx, date, fn)
}

func requireDate(d time.Time) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, dayclose.Invalid("business_date", "is required")
	}
	return dayclose.NormalizeDate(d), nil
}

func requireActor(field, actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", dayclose.Invalid(field, "is required")
	}
	if len(actor) > maxActorLen {
		return "", dayclose.Invalid(field, fmt.Sprintf("must be at most %d characters", maxActorLen))
	}
	return actor, nil
}

func optionalText(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if len(v) > maxCommentLen {
		return nil, dayclose.Invalid(field, fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	return &v, nil
}

func dateKey(d time.Time) string { return d.Format(dayclose.DateLayout) }

// ensureDateOpen rejects writes on a locked business date.
func ensureDateOpen(ctx context.Context, r uow.Repos, date time.Time) error {
	latest, err := r.Audits.Latest(ctx, date)
	if err != nil {
		return err
	}
	if dayclose.IsDateLocked(latest) {
		return fmt.Errorf("%w: business date %s", dayclose.ErrAlreadyLocked, dateKey(date))
	}
	return nil
}

func (u *Usecase) isCashier(user *staff.User) bool {
	for _, role := range u.policy.CashierRoles {
		if strings.EqualFold(strings.TrimSpace(role), user.Role.Name) {
			return true
		}
	}
	return false
}

func (u *Usecase) cashier(ctx context.Context, r uow.Repos, id uint64) (*staff.User, error) {
	user, err := r.Users.GetActiveByID(ctx, id)
	if errors.Is(err, staff.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %d", dayclose.ErrCashierNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if !u.isCashier(user) {
		return nil, fmt.Errorf("%w: user %d does not hold a cashier role", dayclose.ErrCashierNotFound, id)
	}
	return user, nil
}

func toView(c *dayclose.DayClose) CloseView {
	return CloseView{
		ID:               c.ID,
		BusinessDate:     dateKey(c.BusinessDate),
		CashierID:        c.CashierID,
		CashierName:      c.CashierName,
		OpeningFloat:     dayclose.Money(c.OpeningFloat),
		SystemAmount:     dayclose.Money(c.SystemAmount),
		ExpectedCash:     c.ExpectedCash(),
		DeclaredAmount:   c.DeclaredAmount,
		Variance:         c.Variance,
		Status:           c.Status,
		BadgeClass:       c.Status.BadgeClass(),
		RequiresApproval: c.RequiresApproval(),
		ApprovedBy:       c.ApprovedBy,
		ApprovalComment:  c.ApprovalComment,
		ApprovedAt:       c.ApprovedAt,
		LockedFlag:       c.LockedFlag,
		LockedAt:         c.LockedAt,
		LockedBy:         c.LockedBy,
		UpdatedBy:        c.UpdatedBy,
		UpdatedAt:        c.UpdatedAt,
	}
}

// summarize builds the views and totals. ledger is keyed by cashier and marks declared
// rows whose ledger cash has moved since the declaration.
func summarize(rows []dayclose.DayClose, ledger map[uint64]decimal.Decimal) ([]CloseView, SummaryTotals) {
	views := make([]CloseView, 0, len(rows))
	var t SummaryTotals
	for i := range rows {
		c := &rows[i]
		v := toView(c)
		if amount, ok := ledger[c.CashierID]; ok && !c.IsLocked() {
			drift := dayclose.Money(amount.Sub(c.SystemAmount))
			v.LedgerAmount = &amount
			v.LedgerDrift = &drift
			t.DriftCount++
		}
		views = append(views, v)
		t.Cashiers++
		t.OpeningFloat = t.OpeningFloat.Add(c.OpeningFloat)
		t.SystemAmount = t.SystemAmount.Add(c.SystemAmount)
		t.ExpectedCash = t.ExpectedCash.Add(c.ExpectedCash())
		if c.DeclaredAmount != nil {
			t.Declared = t.Declared.Add(*c.DeclaredAmount)
		}
		if c.Variance != nil {
			t.Variance = t.Variance.Add(*c.Variance)
		}
		switch c.Status {
		case dayclose.StatusPending:
			t.PendingCount++
		case dayclose.StatusOK:
			t.OKCount++
		case dayclose.StatusCheck:
			t.CheckCount++
		case dayclose.StatusLocked:
			t.LockedCount++
		}
	}
	t.OpeningFloat = dayclose.Money(t.OpeningFloat)
	t.SystemAmount = dayclose.Money(t.SystemAmount)
	t.ExpectedCash = dayclose.Money(t.ExpectedCash)
	t.Declared = dayclose.Money(t.Declared)
	t.Variance = dayclose.Money(t.Variance)
	t.BlockingCount = dayclose.CountBlocking(rows)
	t.ReadyToLock = t.BlockingCount == 0 && t.LockedCount < t.Cashiers
	return views, t
}
