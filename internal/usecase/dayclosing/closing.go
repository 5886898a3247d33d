package dayclosing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
)

// refreshOutcome counts what refresh changed. ledger holds the current ledger cash of
// declared, unlocked rows whose stored system amount no longer matches it.
type refreshOutcome struct {
	refreshed, created int
	ledger             map[uint64]decimal.Decimal
}

// refresh pulls current cash totals from the ledger into every open, undeclared row and creates
// PENDING rows for cashiers who took cash without an opening. Must run inside the date tx.
func (u *Usecase) refresh(ctx context.Context, r uow.Repos, date time.Time) (refreshOutcome, error) {
	out := refreshOutcome{ledger: map[uint64]decimal.Decimal{}}
	rows, err := r.Closes.ListByDate(ctx, date)
	if err != nil {
		return out, err
	}
	now := u.now()
	seen := make(map[uint64]bool, len(rows))
	for i := range rows {
		row := &rows[i]
		seen[row.CashierID] = true
		if row.IsLocked() {
			continue
		}
		amount, err := r.Ledger.GetCashierSystemAmount(ctx, date, row.CashierID)
		if err != nil {
			return out, err
		}
		// a declared variance stays tied to the amount it was computed against
		if row.DeclaredAmount != nil {
			if !dayclose.Money(amount).Equal(dayclose.Money(row.SystemAmount)) {
				out.ledger[row.CashierID] = dayclose.Money(amount)
			}
			continue
		}
		if !row.ApplySystemAmount(amount, now) {
			continue
		}
		if err := r.Closes.Save(ctx, row); err != nil {
			return out, err
		}
		out.refreshed++
	}

	latest, err := r.Audits.Latest(ctx, date)
	if err != nil {
		return out, err
	}
	if dayclose.IsDateLocked(latest) {
		return out, nil
	}

	refs, err := r.Ledger.ListCashiersWithSales(ctx, date)
	if err != nil {
		return out, err
	}
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		float := decimal.Zero
		opening, err := r.Openings.FindByDateAndCashier(ctx, date, ref.ID)
		switch {
		case err == nil:
			float = opening.OpeningFloat
		case !errors.Is(err, dayclose.ErrOpeningNotFound):
			return out, err
		}
		amount, err := r.Ledger.GetCashierSystemAmount(ctx, date, ref.ID)
		if err != nil {
			return out, err
		}
		name := ref.Name
		if name == "" {
			name = fmt.Sprintf("Cashier #%d", ref.ID)
		}
		row := &dayclose.DayClose{
			BusinessDate: date,
			CashierID:    ref.ID,
			CashierName:  name,
			SystemAmount: dayclose.Money(amount),
			OpeningFloat: dayclose.Money(float),
			Status:       dayclose.StatusPending,
			CreatedBy:    "system",
			CreatedAt:    now,
		}
		if err := r.Closes.Create(ctx, row); err != nil {
			return out, err
		}
		seen[ref.ID] = true
		out.created++
	}
	return out, nil
}

// RefreshSystemAmounts recomputes system cash for the date without touching declarations.
// Declared rows whose ledger moved are only counted as drifted.
func (u *Usecase) RefreshSystemAmounts(ctx context.Context, businessDate time.Time) RefreshResult {
	date, err := requireDate(businessDate)
	if err != nil {
		return RefreshResult{Result: u.failure("RefreshSystemAmounts", nil, err)}
	}
	var out refreshOutcome
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		var err error
		out, err = u.refresh(ctx, r, date)
		return err
	})
	if err != nil {
		return RefreshResult{Result: u.failure("RefreshSystemAmounts", map[string]any{"business_date": dateKey(date)}, err)}
	}
	return RefreshResult{
		Result:    success(fmt.Sprintf("%d row(s) refreshed, %d created", out.refreshed, out.created)),
		Refreshed: out.refreshed,
		Created:   out.created,
		Drifted:   len(out.ledger),
	}
}

// GetDayClosingSummary refreshes system amounts, then returns every row of the date with totals.
func (u *Usecase) GetDayClosingSummary(ctx context.Context, businessDate time.Time) SummaryResult {
	date, err := requireDate(businessDate)
	if err != nil {
		return SummaryResult{Result: u.failure("GetDayClosingSummary", nil, err)}
	}
	var (
		rows []dayclose.DayClose
		out  refreshOutcome
	)
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		var err error
		if out, err = u.refresh(ctx, r, date); err != nil {
			return err
		}
		rows, err = r.Closes.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return SummaryResult{Result: u.failure("GetDayClosingSummary", map[string]any{"business_date": dateKey(date)}, err)}
	}
	views, totals := summarize(rows, out.ledger)
	return SummaryResult{
		Result:       success(fmt.Sprintf("%d cashier(s) for %s", len(views), dateKey(date))),
		BusinessDate: dateKey(date),
		Rows:         views,
		Totals:       totals,
	}
}

func (u *Usecase) GetDayLockStatus(ctx context.Context, businessDate time.Time) LockStatusResult {
	date, err := requireDate(businessDate)
	if err != nil {
		return LockStatusResult{Result: u.failure("GetDayLockStatus", nil, err)}
	}
	latest, err := u.repos.Audits.Latest(ctx, date)
	if err != nil {
		return LockStatusResult{Result: u.failure("GetDayLockStatus", map[string]any{"business_date": dateKey(date)}, err)}
	}
	locked := dayclose.IsDateLocked(latest)
	msg := fmt.Sprintf("business date %s is open", dateKey(date))
	if locked {
		msg = fmt.Sprintf("business date %s is locked", dateKey(date))
	}
	return LockStatusResult{Result: success(msg), Locked: locked, Latest: latest}
}

// DeclareCash records the counted drawer for a cashier and classifies the variance.
func (u *Usecase) DeclareCash(ctx context.Context, in DeclareInput) DeclareResult {
	date, err := requireDate(in.BusinessDate)
	if err == nil && in.CashierID == 0 {
		err = dayclose.Invalid("cashier_id", "is required")
	}
	if err == nil && in.DeclaredAmount.IsNegative() {
		err = dayclose.Invalid("declared_amount", "must be greater than or equal to 0")
	}
	var actor string
	if err == nil {
		actor, err = requireActor("actor", in.Actor)
	}
	if err != nil {
		return DeclareResult{Result: u.failure("DeclareCash", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date), "cashier_id": in.CashierID}

	var row *dayclose.DayClose
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		c, err := r.Closes.FindByDateAndCashier(ctx, date, in.CashierID)
		if err != nil {
			return err
		}
		if c.IsLocked() {
			return dayclose.ErrAlreadyLocked
		}
		amount, err := r.Ledger.GetCashierSystemAmount(ctx, date, in.CashierID)
		if err != nil {
			return err
		}
		if err := c.DeclareAgainst(amount, in.DeclaredAmount, u.policy.Tolerance, actor, u.now()); err != nil {
			return err
		}
		if err := r.Closes.Save(ctx, c); err != nil {
			return err
		}
		row = c
		return nil
	})
	if err != nil {
		return DeclareResult{Result: u.failure("DeclareCash", data, err)}
	}

	variance := *row.Variance
	msg := fmt.Sprintf("cash declared, variance %s within tolerance", variance.StringFixed(2))
	if row.Status == dayclose.StatusCheck {
		msg = fmt.Sprintf("cash declared, variance %s needs supervisor approval", variance.StringFixed(2))
	}
	return DeclareResult{
		Result:       success(msg),
		CloseID:      row.ID,
		SystemAmount: row.SystemAmount,
		ExpectedCash: row.ExpectedCash(),
		Variance:     row.Variance,
		Status:       row.Status,
	}
}

// ApproveVariance resolves a CHECK row. Rejection keeps it blocking until a new declaration.
func (u *Usecase) ApproveVariance(ctx context.Context, in ApproveInput) ApproveResult {
	var err error
	if in.CloseID == 0 {
		err = dayclose.Invalid("close_id", "is required")
	}
	var actor string
	if err == nil {
		actor, err = requireActor("actor", in.Actor)
	}
	comment := strings.TrimSpace(in.Comment)
	if err == nil && len(comment) > maxCommentLen {
		err = dayclose.Invalid("comment", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	if err != nil {
		return ApproveResult{Result: u.failure("ApproveVariance", nil, err)}
	}
	data := map[string]any{"close_id": in.CloseID, "approved": in.Approved}

	// the business date is needed before the date tx can be opened
	current, err := u.repos.Closes.FindByID(ctx, in.CloseID)
	if err != nil {
		return ApproveResult{Result: u.failure("ApproveVariance", data, err)}
	}

	var status dayclose.Status
	err = u.withinDate(ctx, current.BusinessDate, func(r uow.Repos) error {
		c, err := r.Closes.FindByID(ctx, in.CloseID)
		if err != nil {
			return err
		}
		if err := c.ApplyApproval(in.Approved, actor, comment, u.now()); err != nil {
			return err
		}
		if err := r.Closes.Save(ctx, c); err != nil {
			return err
		}
		status = c.Status
		return nil
	})
	if err != nil {
		return ApproveResult{Result: u.failure("ApproveVariance", data, err)}
	}

	msg := "variance approved"
	if !in.Approved {
		msg = "variance rejected, cashier must declare again"
	}
	return ApproveResult{Result: success(msg), CloseID: in.CloseID, Status: status}
}
