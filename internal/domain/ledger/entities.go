package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodCash    PaymentMethod = "CASH"
	MethodCard    PaymentMethod = "CARD"
	MethodMobile  PaymentMethod = "MOBILE"
	MethodVoucher PaymentMethod = "VOUCHER"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentVoided    PaymentStatus = "VOIDED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Table: orders (owned by order capture; read-only here)
type Order struct {
	ID                   uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo              string          `gorm:"column:order_no;size:32;not null;uniqueIndex" json:"order_no"`
	BusinessDate         time.Time       `gorm:"column:business_date;type:date;not null;index" json:"business_date"`
	TableNo              string          `gorm:"column:table_no;size:16" json:"table_no"`
	Status               OrderStatus     `gorm:"column:status;type:varchar(16);not null" json:"status"`
	CustomerCount        int             `gorm:"column:customer_count;not null;default:0" json:"customer_count"`
	SubTotal             decimal.Decimal `gorm:"column:sub_total;type:decimal(10,2);not null" json:"sub_total"`
	TaxPercent           decimal.Decimal `gorm:"column:tax_percent;type:decimal(5,2);not null" json:"tax_percent"`
	ServiceChargePercent decimal.Decimal `gorm:"column:service_charge_percent;type:decimal(5,2);not null" json:"service_charge_percent"`
	TotalAmount          decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// Table: payments (owned by payment capture; read-only here)
type Payment struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID      uint64          `gorm:"column:order_id;not null;index" json:"order_id"`
	CashierID    uint64          `gorm:"column:cashier_id;not null;index:idx_payments_date_cashier,priority:2" json:"cashier_id"`
	BusinessDate time.Time       `gorm:"column:business_date;type:date;not null;index:idx_payments_date_cashier,priority:1" json:"business_date"`
	Method       PaymentMethod   `gorm:"column:method;type:varchar(16);not null" json:"method"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Status       PaymentStatus   `gorm:"column:status;type:varchar(16);not null" json:"status"`
	PaidAt       time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
}

func (Payment) TableName() string { return "payments" }

// SalesSummary is the day-level sales rollup used by the EOD report.
type SalesSummary struct {
	TotalOrders    int64           `json:"total_orders"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	CardSales      decimal.Decimal `json:"card_sales"`
	OtherSales     decimal.Decimal `json:"other_sales"`
	TotalCustomers int64           `json:"total_customers"`
}

// CashierRef identifies a cashier that took payments on a date.
type CashierRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
