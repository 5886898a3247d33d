package dayclose

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical business date format.
const DateLayout = "2006-01-02"

// NormalizeDate strips the clock part, keeping the calendar date of t as UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Invalid("business_date", "must be a YYYY-MM-DD date")
	}
	return t.UTC(), nil
}

// Money rounds to the 2 decimal places of the decimal(10,2) columns.
func Money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// ComputeVariance compares the counted drawer with what it should hold:
// declared - (system amount + opening float). Positive is an overage, negative a shortage.
func ComputeVariance(declared, openingFloat, systemAmount decimal.Decimal) decimal.Decimal {
	return Money(declared.Sub(systemAmount.Add(openingFloat)))
}

// Classify returns OK when |variance| <= tolerance, CHECK otherwise.
func Classify(variance, tolerance decimal.Decimal) Status {
	if variance.Abs().LessThanOrEqual(tolerance.Abs()) {
		return StatusOK
	}
	return StatusCheck
}

// ExpectedCash is what should be in the drawer: system cash sales plus the float.
func (c *DayClose) ExpectedCash() decimal.Decimal {
	return Money(c.SystemAmount.Add(c.OpeningFloat))
}

func (c *DayClose) IsLocked() bool { return c.LockedFlag || c.Status == StatusLocked }

// Blocking reports whether the row prevents a day lock.
func (c *DayClose) Blocking() bool { return !c.IsLocked() && c.Status.Blocking() }

func (c *DayClose) RequiresApproval() bool { return !c.IsLocked() && c.Status == StatusCheck }

func (c *DayClose) touch(by string, at time.Time) {
	c.UpdatedBy = &by
	c.UpdatedAt = &at
}

// ApplySystemAmount refreshes the ledger total. Locked rows are frozen and declared rows keep
// the figure they were reconciled against, so variance stays consistent. Returns whether the
// row changed.
func (c *DayClose) ApplySystemAmount(amount decimal.Decimal, at time.Time) bool {
	if c.IsLocked() || c.DeclaredAmount != nil {
		return false
	}
	amount = Money(amount)
	if c.SystemAmount.Equal(amount) {
		return false
	}
	c.SystemAmount = amount
	c.touch("system", at)
	return true
}

// ApplyDeclaration records the counted cash and derives variance and status.
// Any earlier approval is discarded: a new count needs a new decision.
func (c *DayClose) ApplyDeclaration(declared, tolerance decimal.Decimal, by string, at time.Time) error {
	if c.IsLocked() {
		return ErrAlreadyLocked
	}
	if declared.IsNegative() {
		return Invalid("declared_amount", "must be greater than or equal to 0")
	}
	declared = Money(declared)
	variance := ComputeVariance(declared, c.OpeningFloat, c.SystemAmount)

	c.DeclaredAmount = &declared
	c.Variance = &variance
	c.Status = Classify(variance, tolerance)
	c.ApprovedBy = nil
	c.ApprovalComment = nil
	c.ApprovedAt = nil
	c.touch(by, at)
	return nil
}

// DeclareAgainst refreshes the system amount to the latest ledger figure and then applies the
// declaration, so the cashier always reconciles against current sales.
func (c *DayClose) DeclareAgainst(amount, declared, tolerance decimal.Decimal, by string, at time.Time) error {
	if c.IsLocked() {
		return ErrAlreadyLocked
	}
	c.SystemAmount = Money(amount)
	return c.ApplyDeclaration(declared, tolerance, by, at)
}

// ApplyApproval resolves a CHECK row: approved moves it to OK, rejected keeps it in CHECK
// until the cashier declares again. Approver and comment are always recorded.
func (c *DayClose) ApplyApproval(approved bool, by, comment string, at time.Time) error {
	if c.IsLocked() {
		return ErrAlreadyLocked
	}
	if c.Status != StatusCheck {
		return ErrInvalidTransition
	}
	if approved {
		c.Status = StatusOK
	}
	c.ApprovedBy = &by
	c.ApprovalComment = &comment
	c.ApprovedAt = &at
	c.touch(by, at)
	return nil
}

// ApplyOpeningFloat corrects the float copied at opening time; only allowed before a declaration.
func (c *DayClose) ApplyOpeningFloat(float decimal.Decimal, by string, at time.Time) error {
	if c.IsLocked() {
		return ErrAlreadyLocked
	}
	if c.DeclaredAmount != nil {
		return ErrInvalidTransition
	}
	c.OpeningFloat = Money(float)
	c.touch(by, at)
	return nil
}

// ApplyLock freezes an OK row.
func (c *DayClose) ApplyLock(by string, at time.Time) error {
	if c.IsLocked() {
		return ErrAlreadyLocked
	}
	if c.Status != StatusOK {
		return ErrInvalidTransition
	}
	c.PreLockStatus = c.Status
	c.Status = StatusLocked
	c.LockedFlag = true
	c.LockedAt = &at
	c.LockedBy = &by
	c.touch(by, at)
	return nil
}

// ApplyReopen restores the status the row had before it was locked.
func (c *DayClose) ApplyReopen(by string, at time.Time) error {
	if !c.IsLocked() {
		return ErrDayNotLocked
	}
	prior := c.PreLockStatus
	if !prior.Valid() || prior == StatusLocked {
		prior = StatusOK
	}
	c.Status = prior
	c.PreLockStatus = ""
	c.LockedFlag = false
	c.LockedAt = nil
	c.LockedBy = nil
	c.touch(by, at)
	return nil
}

// CountBlocking counts rows that are PENDING or unapproved CHECK.
func CountBlocking(rows []DayClose) int {
	n := 0
	for i := range rows {
		if rows[i].Blocking() {
			n++
		}
	}
	return n
}

// CheckLockable returns a *DayNotReadyError when any row still blocks the lock.
func CheckLockable(businessDate time.Time, rows []DayClose) error {
	if n := CountBlocking(rows); n > 0 {
		return &DayNotReadyError{BusinessDate: businessDate, IssueCount: n}
	}
	return nil
}

// IsDateLocked reads the latest audit row; no history means never locked.
func IsDateLocked(latest *DayLockAudit) bool {
	return latest != nil && latest.Status == AuditLocked
}
