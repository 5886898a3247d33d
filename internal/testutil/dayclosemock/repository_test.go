package dayclosemock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "resto-pos-backend/internal/domain/dayclose"
)

func TestCloses_UsesProvidedFuncs(t *testing.T) {
	ctx := context.Background()
	row := &domain.DayClose{ID: 7}
	wantErr := errors.New("boom")

	m := &Closes{
		FindByIDFn: func(gotCtx context.Context, id uint64) (*domain.DayClose, error) {
			if gotCtx != ctx || id != 7 {
				t.Fatalf("FindByID args mismatch: %d", id)
			}
			return row, nil
		},
		SaveFn: func(_ context.Context, c *domain.DayClose) error {
			if c != row {
				t.Fatalf("Save arg mismatch")
			}
			return wantErr
		},
	}
	got, err := m.FindByID(ctx, 7)
	if err != nil || got != row {
		t.Fatalf("FindByID: got %v, %v", got, err)
	}
	if err := m.Save(ctx, row); !errors.Is(err, wantErr) {
		t.Fatalf("Save: want %v, got %v", wantErr, err)
	}
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	closes := &Closes{}
	if err := closes.Create(ctx, &domain.DayClose{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := closes.ListByDate(ctx, d); !errors.Is(err, errUnimplemented) {
		t.Fatalf("ListByDate default: want errUnimplemented, got %v", err)
	}

	openings := &Openings{}
	if _, err := openings.FindByDateAndCashier(ctx, d, 1); !errors.Is(err, errUnimplemented) {
		t.Fatalf("FindByDateAndCashier default: want errUnimplemented, got %v", err)
	}

	audits := &Audits{}
	latest, err := audits.Latest(ctx, d)
	if err != nil || latest != nil {
		t.Fatalf("Latest default: want (nil, nil), got (%v, %v)", latest, err)
	}
	if err := audits.Append(ctx, &domain.DayLockAudit{}); err != nil {
		t.Fatalf("Append default: %v", err)
	}
}
