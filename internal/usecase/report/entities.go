package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input selects the closes to report on. Both dates are inclusive business dates.
type Input struct {
	From      time.Time
	To        time.Time
	CashierID *uint64
}

type Summary struct {
	From              string          `json:"from"`
	To                string          `json:"to"`
	Records           int             `json:"records"`
	Days              int             `json:"days"`
	Cashiers          int             `json:"cashiers"`
	DeclaredRecords   int             `json:"declared_records"`
	TotalOpeningFloat decimal.Decimal `json:"total_opening_float"`
	TotalSystemAmount decimal.Decimal `json:"total_system_amount"`
	TotalExpectedCash decimal.Decimal `json:"total_expected_cash"`
	TotalDeclared     decimal.Decimal `json:"total_declared"`
	TotalVariance     decimal.Decimal `json:"total_variance"`
	TotalOverage      decimal.Decimal `json:"total_overage"`
	TotalShortage     decimal.Decimal `json:"total_shortage"` // magnitude, always >= 0
	PendingCount      int             `json:"pending_count"`
	OKCount           int             `json:"ok_count"`
	CheckCount        int             `json:"check_count"`
	LockedCount       int             `json:"locked_count"`
	LockedDays        int             `json:"locked_days"`
}

type DailyRow struct {
	BusinessDate  string          `json:"business_date"`
	Cashiers      int             `json:"cashiers"`
	OpeningFloat  decimal.Decimal `json:"opening_float"`
	SystemAmount  decimal.Decimal `json:"system_amount"`
	DeclaredTotal decimal.Decimal `json:"declared_total"`
	Variance      decimal.Decimal `json:"variance"`
	PendingCount  int             `json:"pending_count"`
	OKCount       int             `json:"ok_count"`
	CheckCount    int             `json:"check_count"`
	LockedCount   int             `json:"locked_count"`
	DayLocked     bool            `json:"day_locked"`
}

type DetailRow struct {
	CloseID         uint64           `json:"close_id"`
	BusinessDate    string           `json:"business_date"`
	CashierID       uint64           `json:"cashier_id"`
	CashierName     string           `json:"cashier_name"`
	OpeningFloat    decimal.Decimal  `json:"opening_float"`
	SystemAmount    decimal.Decimal  `json:"system_amount"`
	ExpectedCash    decimal.Decimal  `json:"expected_cash"`
	DeclaredAmount  *decimal.Decimal `json:"declared_amount"`
	Variance        *decimal.Decimal `json:"variance"`
	Status          string           `json:"status"`
	ApprovedBy      *string          `json:"approved_by,omitempty"`
	ApprovalComment *string          `json:"approval_comment,omitempty"`
	LockedBy        *string          `json:"locked_by,omitempty"`
	LockedAt        *time.Time       `json:"locked_at,omitempty"`
}

// CashierStats ranks variances by magnitude: best is closest to zero, worst furthest.
type CashierStats struct {
	CashierID       uint64           `json:"cashier_id"`
	CashierName     string           `json:"cashier_name"`
	Days            int              `json:"days"`
	DeclaredDays    int              `json:"declared_days"`
	WithinTolerance int              `json:"within_tolerance"`
	AboveTolerance  int              `json:"above_tolerance"`
	TotalVariance   decimal.Decimal  `json:"total_variance"`
	AverageVariance decimal.Decimal  `json:"average_variance"`
	BestVariance    *decimal.Decimal `json:"best_variance"`
	BestDate        string           `json:"best_date,omitempty"`
	WorstVariance   *decimal.Decimal `json:"worst_variance"`
	WorstDate       string           `json:"worst_date,omitempty"`
}

type LockEvent struct {
	LockID       string     `json:"lock_id"`
	BusinessDate string     `json:"business_date"`
	Status       string     `json:"status"`
	LockedBy     string     `json:"locked_by"`
	LockTime     time.Time  `json:"lock_time"`
	Remarks      *string    `json:"remarks,omitempty"`
	ReopenedBy   *string    `json:"reopened_by,omitempty"`
	ReopenedAt   *time.Time `json:"reopened_at,omitempty"`
	ReopenReason *string    `json:"reopen_reason,omitempty"`
}

type CashClosingReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     Summary        `json:"summary"`
	Daily       []DailyRow     `json:"daily"`
	Details     []DetailRow    `json:"details"`
	Cashiers    []CashierStats `json:"cashiers"`
	LockHistory []LockEvent    `json:"lock_history"`
}
