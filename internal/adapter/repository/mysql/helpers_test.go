package mysql

import (
	"testing"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"
	"resto-pos-backend/internal/domain/staff"
	infradb "resto-pos-backend/internal/infrastructure/db"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// openTestDB creates an in-memory sqlite DB with the full schema. One connection only:
// every new connection to ":memory:" would be a different, empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infradb.OpenSQLite(":memory:", infradb.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infradb.MigrateWithCollaborators(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seedUser(t *testing.T, db *gorm.DB, username, fullName, role string, active bool) *staff.User {
	t.Helper()
	var r staff.Role
	if err := db.Where("name = ?", role).FirstOrCreate(&r, staff.Role{Name: role}).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	u := &staff.User{Username: username, FullName: fullName, RoleID: r.ID, IsActive: active}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedPayment(t *testing.T, db *gorm.DB, date time.Time, cashierID uint64, method ledger.PaymentMethod, amount string, status ledger.PaymentStatus) {
	t.Helper()
	p := &ledger.Payment{
		OrderID:      1,
		CashierID:    cashierID,
		BusinessDate: date,
		Method:       method,
		Amount:       dec(amount),
		Status:       status,
		PaidAt:       date.Add(12 * time.Hour),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func seedOrder(t *testing.T, db *gorm.DB, no string, date time.Time, status ledger.OrderStatus, customers int, total string) {
	t.Helper()
	o := &ledger.Order{
		OrderNo:              no,
		BusinessDate:         date,
		Status:               status,
		CustomerCount:        customers,
		SubTotal:             dec(total),
		TaxPercent:           decimal.Zero,
		ServiceChargePercent: decimal.Zero,
		TotalAmount:          dec(total),
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func makeClose(date time.Time, cashierID uint64, name string) *dayclose.DayClose {
	return &dayclose.DayClose{
		BusinessDate: date,
		CashierID:    cashierID,
		CashierName:  name,
		SystemAmount: decimal.Zero,
		OpeningFloat: dec("500"),
		Status:       dayclose.StatusPending,
		CreatedBy:    "manager",
		CreatedAt:    time.Now().UTC(),
	}
}

func makeOpening(date time.Time, cashierID uint64, name string) *dayclose.DayOpening {
	return &dayclose.DayOpening{
		BusinessDate: date,
		CashierID:    cashierID,
		CashierName:  name,
		OpeningFloat: dec("500"),
		CreatedBy:    "manager",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
}
