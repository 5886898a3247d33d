package mysql

import (
	"context"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerReader aggregates the orders/payments tables written by order and payment capture.
type LedgerReader struct{ db *gorm.DB }

func NewLedgerReader(db *gorm.DB) *LedgerReader { return &LedgerReader{db: db} }

func (r *LedgerReader) GetCashierSystemAmount(ctx context.Context, businessDate time.Time, cashierID uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&ledger.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("business_date = ? AND cashier_id = ? AND method = ? AND status = ?",
			dayclose.NormalizeDate(businessDate), cashierID, ledger.MethodCash, ledger.PaymentCompleted).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return dayclose.Money(total), nil
}

func (r *LedgerReader) GetSalesSummary(ctx context.Context, businessDate time.Time) (*ledger.SalesSummary, error) {
	date := dayclose.NormalizeDate(businessDate)

	var byMethod []struct {
		Method ledger.PaymentMethod
		Total  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.Payment{}).
		Select("method, COALESCE(SUM(amount), 0) AS total").
		Where("business_date = ? AND status = ?", date, ledger.PaymentCompleted).
		Group("method").
		Scan(&byMethod).Error; err != nil {
		return nil, err
	}

	var orders struct {
		TotalOrders    int64
		TotalCustomers int64
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(customer_count), 0) AS total_customers").
		Where("business_date = ? AND status = ?", date, ledger.OrderCompleted).
		Scan(&orders).Error; err != nil {
		return nil, err
	}

	out := &ledger.SalesSummary{
		TotalOrders:    orders.TotalOrders,
		TotalCustomers: orders.TotalCustomers,
		TotalSales:     decimal.Zero,
		CashSales:      decimal.Zero,
		CardSales:      decimal.Zero,
		OtherSales:     decimal.Zero,
	}
	for _, m := range byMethod {
		amt := dayclose.Money(m.Total)
		switch m.Method {
		case ledger.MethodCash:
			out.CashSales = out.CashSales.Add(amt)
		case ledger.MethodCard:
			out.CardSales = out.CardSales.Add(amt)
		default:
			out.OtherSales = out.OtherSales.Add(amt)
		}
		out.TotalSales = out.TotalSales.Add(amt)
	}
	return out, nil
}

func (r *LedgerReader) ListCashiersWithSales(ctx context.Context, businessDate time.Time) ([]ledger.CashierRef, error) {
	var out []ledger.CashierRef
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.cashier_id AS id, COALESCE(NULLIF(users.full_name, ''), users.username, '') AS name").
		Joins("LEFT JOIN users ON users.id = payments.cashier_id").
		Where("payments.business_date = ? AND payments.method = ? AND payments.status = ?",
			dayclose.NormalizeDate(businessDate), ledger.MethodCash, ledger.PaymentCompleted).
		Group("payments.cashier_id, users.full_name, users.username").
		Order("payments.cashier_id ASC").
		Scan(&out).Error
	return out, err
}
