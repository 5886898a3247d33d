package dayclose

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table: cashier_day_openings
// One row per (business_date, cashier_id); holds the starting float.
type DayOpening struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessDate time.Time       `gorm:"column:business_date;type:date;not null;uniqueIndex:ux_day_openings_date_cashier,priority:1" json:"business_date"`
	CashierID    uint64          `gorm:"column:cashier_id;not null;uniqueIndex:ux_day_openings_date_cashier,priority:2" json:"cashier_id"`
	CashierName  string          `gorm:"column:cashier_name;size:128;not null" json:"cashier_name"`
	OpeningFloat decimal.Decimal `gorm:"column:opening_float;type:decimal(10,2);not null" json:"opening_float"`
	CreatedBy    string          `gorm:"column:created_by;size:64;not null" json:"created_by"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedBy    *string         `gorm:"column:updated_by;size:64" json:"updated_by,omitempty"`
	UpdatedAt    *time.Time      `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
	IsActive     bool            `gorm:"column:is_active;not null" json:"is_active"`
}

func (DayOpening) TableName() string { return "cashier_day_openings" }

// Table: cashier_day_closes
// The unit of reconciliation: one row per (business_date, cashier_id).
// OpeningFloat is copied from the opening row; the two are joined by date+cashier, never by id.
type DayClose struct {
	ID              uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessDate    time.Time        `gorm:"column:business_date;type:date;not null;uniqueIndex:ux_day_closes_date_cashier,priority:1" json:"business_date"`
	CashierID       uint64           `gorm:"column:cashier_id;not null;uniqueIndex:ux_day_closes_date_cashier,priority:2;index" json:"cashier_id"`
	CashierName     string           `gorm:"column:cashier_name;size:128;not null" json:"cashier_name"`
	SystemAmount    decimal.Decimal  `gorm:"column:system_amount;type:decimal(10,2);not null" json:"system_amount"`
	DeclaredAmount  *decimal.Decimal `gorm:"column:declared_amount;type:decimal(10,2)" json:"declared_amount"`
	OpeningFloat    decimal.Decimal  `gorm:"column:opening_float;type:decimal(10,2);not null" json:"opening_float"`
	Variance        *decimal.Decimal `gorm:"column:variance;type:decimal(10,2)" json:"variance"`
	Status          Status           `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index" json:"status"`
	PreLockStatus   Status           `gorm:"column:pre_lock_status;type:varchar(16)" json:"-"`
	ApprovedBy      *string          `gorm:"column:approved_by;size:64" json:"approved_by,omitempty"`
	ApprovalComment *string          `gorm:"column:approval_comment;type:text" json:"approval_comment,omitempty"`
	ApprovedAt      *time.Time       `gorm:"column:approved_at" json:"approved_at,omitempty"`
	LockedFlag      bool             `gorm:"column:locked_flag;not null;default:false" json:"locked_flag"`
	LockedAt        *time.Time       `gorm:"column:locked_at" json:"locked_at,omitempty"`
	LockedBy        *string          `gorm:"column:locked_by;size:64" json:"locked_by,omitempty"`
	Version         uint64           `gorm:"column:version;not null;default:1" json:"-"`
	CreatedBy       string           `gorm:"column:created_by;size:64;not null" json:"created_by"`
	CreatedAt       time.Time        `gorm:"column:created_at" json:"created_at"`
	UpdatedBy       *string          `gorm:"column:updated_by;size:64" json:"updated_by,omitempty"`
	UpdatedAt       *time.Time       `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (DayClose) TableName() string { return "cashier_day_closes" }

// Table: day_lock_audits
// Append-only. The newest row by lock_time decides whether a date is locked.
type DayLockAudit struct {
	ID           uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LockID       string      `gorm:"column:lock_id;type:char(32);not null;uniqueIndex" json:"lock_id"`
	BusinessDate time.Time   `gorm:"column:business_date;type:date;not null;index:idx_day_lock_audits_date_time,priority:1" json:"business_date"`
	LockedBy     string      `gorm:"column:locked_by;size:64;not null" json:"locked_by"`
	LockTime     time.Time   `gorm:"column:lock_time;not null;index:idx_day_lock_audits_date_time,priority:2" json:"lock_time"`
	Remarks      *string     `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	Status       AuditStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ReopenedBy   *string     `gorm:"column:reopened_by;size:64" json:"reopened_by,omitempty"`
	ReopenedAt   *time.Time  `gorm:"column:reopened_at" json:"reopened_at,omitempty"`
	ReopenReason *string     `gorm:"column:reopen_reason;type:text" json:"reopen_reason,omitempty"`
}

func (DayLockAudit) TableName() string { return "day_lock_audits" }

// Table: business_date_guards
// Mutex row per business date, selected FOR UPDATE by every date-scoped transaction.
type DateGuard struct {
	BusinessDate time.Time `gorm:"column:business_date;type:date;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (DateGuard) TableName() string { return "business_date_guards" }
