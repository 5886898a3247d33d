package dayclosing

import (
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"
	"resto-pos-backend/internal/usecase/report"

	"github.com/shopspring/decimal"
)

// Policy holds the configurable business rules of the engine.
type Policy struct {
	Tolerance             decimal.Decimal
	CashierRoles          []string
	AllowOpeningOverwrite bool
}

// Result is embedded in every operation result. Expected business failures come back here with
// Success=false and a code, never as a Go error.
type Result struct {
	Success bool                `json:"success"`
	Code    dayclose.ResultCode `json:"code"`
	Message string              `json:"message"`
}

type AvailableCashier struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	AlreadyInitialized bool   `json:"already_initialized"`
}

type CashiersResult struct {
	Result
	Cashiers []AvailableCashier `json:"cashiers"`
}

// OpeningInput is shared by InitializeDayOpening and UpdateOpeningFloat.
type OpeningInput struct {
	BusinessDate time.Time
	CashierID    uint64
	OpeningFloat decimal.Decimal
	Actor        string
}

type OpeningResult struct {
	Result
	Opening     *dayclose.DayOpening `json:"opening,omitempty"`
	CloseID     uint64               `json:"close_id,omitempty"`
	Overwritten bool                 `json:"overwritten"`
}

type RefreshResult struct {
	Result
	Refreshed int `json:"refreshed"`
	Created   int `json:"created"`
	Drifted   int `json:"drifted"`
}

// CloseView is a DayClose with its display fields derived.
type CloseView struct {
	ID               uint64           `json:"id"`
	BusinessDate     string           `json:"business_date"`
	CashierID        uint64           `json:"cashier_id"`
	CashierName      string           `json:"cashier_name"`
	OpeningFloat     decimal.Decimal  `json:"opening_float"`
	SystemAmount     decimal.Decimal  `json:"system_amount"`
	ExpectedCash     decimal.Decimal  `json:"expected_cash"`
	DeclaredAmount   *decimal.Decimal `json:"declared_amount"`
	Variance         *decimal.Decimal `json:"variance"`
	// set when the ledger moved after the declaration; re-declare to pick it up
	LedgerAmount     *decimal.Decimal `json:"ledger_amount,omitempty"`
	LedgerDrift      *decimal.Decimal `json:"ledger_drift,omitempty"`
	Status           dayclose.Status  `json:"status"`
	BadgeClass       string           `json:"badge_class"`
	RequiresApproval bool             `json:"requires_approval"`
	ApprovedBy       *string          `json:"approved_by,omitempty"`
	ApprovalComment  *string          `json:"approval_comment,omitempty"`
	ApprovedAt       *time.Time       `json:"approved_at,omitempty"`
	LockedFlag       bool             `json:"locked_flag"`
	LockedAt         *time.Time       `json:"locked_at,omitempty"`
	LockedBy         *string          `json:"locked_by,omitempty"`
	UpdatedBy        *string          `json:"updated_by,omitempty"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

type SummaryTotals struct {
	Cashiers      int             `json:"cashiers"`
	OpeningFloat  decimal.Decimal `json:"opening_float"`
	SystemAmount  decimal.Decimal `json:"system_amount"`
	ExpectedCash  decimal.Decimal `json:"expected_cash"`
	Declared      decimal.Decimal `json:"declared"`
	Variance      decimal.Decimal `json:"variance"`
	PendingCount  int             `json:"pending_count"`
	OKCount       int             `json:"ok_count"`
	CheckCount    int             `json:"check_count"`
	LockedCount   int             `json:"locked_count"`
	BlockingCount int             `json:"blocking_count"`
	DriftCount    int             `json:"drift_count"`
	ReadyToLock   bool            `json:"ready_to_lock"`
}

type SummaryResult struct {
	Result
	BusinessDate string        `json:"business_date"`
	Rows         []CloseView   `json:"rows"`
	Totals       SummaryTotals `json:"totals"`
}

type LockStatusResult struct {
	Result
	Locked bool                   `json:"locked"`
	Latest *dayclose.DayLockAudit `json:"latest,omitempty"`
}

type DeclareInput struct {
	BusinessDate   time.Time
	CashierID      uint64
	DeclaredAmount decimal.Decimal
	Actor          string
}

type DeclareResult struct {
	Result
	CloseID      uint64           `json:"close_id,omitempty"`
	SystemAmount decimal.Decimal  `json:"system_amount"`
	ExpectedCash decimal.Decimal  `json:"expected_cash"`
	Variance     *decimal.Decimal `json:"variance,omitempty"`
	Status       dayclose.Status  `json:"status,omitempty"`
}

type ApproveInput struct {
	CloseID  uint64
	Approved bool
	Comment  string
	Actor    string
}

type ApproveResult struct {
	Result
	CloseID uint64          `json:"close_id,omitempty"`
	Status  dayclose.Status `json:"status,omitempty"`
}

type LockInput struct {
	BusinessDate time.Time
	Actor        string
	Remarks      *string
}

type LockResult struct {
	Result
	IssueCount int                    `json:"issue_count"`
	RowsLocked int                    `json:"rows_locked"`
	Audit      *dayclose.DayLockAudit `json:"audit,omitempty"`
}

type ReopenInput struct {
	BusinessDate time.Time
	Actor        string
	Reason       string
}

type ReopenResult struct {
	Result
	RowsReopened int                    `json:"rows_reopened"`
	Audit        *dayclose.DayLockAudit `json:"audit,omitempty"`
}

type EODReport struct {
	BusinessDate string                 `json:"business_date"`
	GeneratedBy  string                 `json:"generated_by"`
	GeneratedAt  time.Time              `json:"generated_at"`
	Rows         []CloseView            `json:"rows"`
	Totals       SummaryTotals          `json:"totals"`
	Locked       bool                   `json:"locked"`
	LatestAudit  *dayclose.DayLockAudit `json:"latest_audit,omitempty"`
	Sales        *ledger.SalesSummary   `json:"sales"`
}

type EODResult struct {
	Result
	Report *EODReport `json:"report,omitempty"`
}

type ReportResult struct {
	Result
	Report *report.CashClosingReport `json:"report,omitempty"`
}
