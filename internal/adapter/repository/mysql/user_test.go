package mysql

import (
	"context"
	"errors"
	"testing"

	"resto-pos-backend/internal/domain/staff"
)

func TestUser_GetActiveByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "Alice Smith", "cashier", true)
	gone := seedUser(t, db, "gone", "Gone Person", "cashier", false)

	got, err := repo.GetActiveByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetActiveByID: %v", err)
	}
	if got.Role.Name != "cashier" || got.DisplayName() != "Alice Smith" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := repo.GetActiveByID(ctx, gone.ID); !errors.Is(err, staff.ErrNotFound) {
		t.Fatalf("inactive user: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetActiveByID(ctx, 999); !errors.Is(err, staff.ErrNotFound) {
		t.Fatalf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestUser_ListActiveByRoleNames(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "bob", "Bob", "Cashier", true)
	seedUser(t, db, "alice", "Alice", "Cashier", true)
	seedUser(t, db, "sam", "Sam", "Supervisor", true)
	seedUser(t, db, "old", "Old", "Cashier", false)
	seedUser(t, db, "kim", "Kim", "Kitchen", true)

	got, err := repo.ListActiveByRoleNames(ctx, []string{" cashier "})
	if err != nil {
		t.Fatalf("ListActiveByRoleNames: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].Username != "bob" {
		t.Fatalf("unexpected cashiers: %+v", got)
	}

	got, _ = repo.ListActiveByRoleNames(ctx, []string{"CASHIER", "supervisor"})
	if len(got) != 3 {
		t.Fatalf("expected 3 users across two roles, got %d", len(got))
	}

	got, _ = repo.ListActiveByRoleNames(ctx, nil)
	if len(got) != 0 {
		t.Fatalf("expected none for empty role list, got %d", len(got))
	}
}
