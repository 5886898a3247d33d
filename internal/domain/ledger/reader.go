package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reader aggregates the order/payment ledger. Only completed payments count.
type Reader interface {
	// Sum of completed cash payments taken by the cashier on the date.
	GetCashierSystemAmount(ctx context.Context, businessDate time.Time, cashierID uint64) (decimal.Decimal, error)
	GetSalesSummary(ctx context.Context, businessDate time.Time) (*SalesSummary, error)
	// Cashiers with at least one completed cash payment on the date.
	ListCashiersWithSales(ctx context.Context, businessDate time.Time) ([]CashierRef, error)
}
