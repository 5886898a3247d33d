package ledgermock

import (
	"context"
	"time"

	domain "resto-pos-backend/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

var _ domain.Reader = (*Reader)(nil)

// Reader is a function-backed mock of domain.Reader. Unset funcs report an empty ledger.
type Reader struct {
	GetCashierSystemAmountFn func(ctx context.Context, date time.Time, cashierID uint64) (decimal.Decimal, error)
	GetSalesSummaryFn        func(ctx context.Context, date time.Time) (*domain.SalesSummary, error)
	ListCashiersWithSalesFn  func(ctx context.Context, date time.Time) ([]domain.CashierRef, error)
}

// Fixed returns a reader with a fixed cash total per cashier.
func Fixed(amounts map[uint64]decimal.Decimal) *Reader {
	return &Reader{
		GetCashierSystemAmountFn: func(_ context.Context, _ time.Time, cashierID uint64) (decimal.Decimal, error) {
			return amounts[cashierID], nil
		},
	}
}

func (m *Reader) GetCashierSystemAmount(ctx context.Context, date time.Time, cashierID uint64) (decimal.Decimal, error) {
	if m.GetCashierSystemAmountFn != nil {
		return m.GetCashierSystemAmountFn(ctx, date, cashierID)
	}
	return decimal.Zero, nil
}

func (m *Reader) GetSalesSummary(ctx context.Context, date time.Time) (*domain.SalesSummary, error) {
	if m.GetSalesSummaryFn != nil {
		return m.GetSalesSummaryFn(ctx, date)
	}
	return &domain.SalesSummary{}, nil
}

func (m *Reader) ListCashiersWithSales(ctx context.Context, date time.Time) ([]domain.CashierRef, error) {
	if m.ListCashiersWithSalesFn != nil {
		return m.ListCashiersWithSalesFn(ctx, date)
	}
	return nil, nil
}
