package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and preserves roster order", func(t *testing.T) {
		group := &models.Group{
			Name:    "Roommates",
			Members: []string{"zoe", "alice", "mike"},
		}

		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		// Roster order matters to the balance engine; alphabetical
		// reordering here would change tie-breaks.
		want := []string{"zoe", "alice", "mike"}
		if len(got.Members) != len(want) {
			t.Fatalf("Members = %v, want %v", got.Members, want)
		}
		for i := range want {
			if got.Members[i] != want[i] {
				t.Errorf("Members[%d] = %s, want %s", i, got.Members[i], want[i])
			}
		}
	})

	t.Run("UpdateGroup replaces roster", func(t *testing.T) {
		group := &models.Group{Name: "Trip", Members: []string{"a", "b"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		group.Name = "Ski Trip"
		group.Members = []string{"a", "b", "c"}
		if err := store.UpdateGroup(ctx, group); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Ski Trip" {
			t.Errorf("Name = %s, want Ski Trip", got.Name)
		}
		if len(got.Members) != 3 {
			t.Errorf("Members = %v, want 3 entries", got.Members)
		}
	})

	t.Run("GetGroup for missing ID returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteGroup cascades to expenses and settlements", func(t *testing.T) {
		group := &models.Group{Name: "Temp", Members: []string{"a", "b"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		expense := &models.Expense{GroupID: group.ID, PayerID: "a", Description: "Pizza", Amount: 20, CreatedBy: "a"}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		settlement := &models.Settlement{GroupID: group.ID, FromMemberID: "b", ToMemberID: "a", Amount: 10, CreatedBy: "b"}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected expense to be cascade-deleted, got %v", err)
		}
		if _, err := store.GetSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected settlement to be cascade-deleted, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Dinner Club", Members: []string{"alice", "bob"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateExpense and GetExpense round trip", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			PayerID:     "alice",
			Description: "Groceries",
			Amount:      54.2,
			CreatedBy:   "alice",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.PayerID != "alice" || got.Amount != 54.2 || got.Description != "Groceries" {
			t.Errorf("GetExpense = %+v", got)
		}
	})

	t.Run("ListExpensesByGroup returns only that group", func(t *testing.T) {
		other := &models.Group{Name: "Other", Members: []string{"x"}}
		if err := store.CreateGroup(ctx, other); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.CreateExpense(ctx, &models.Expense{
			GroupID: other.ID, PayerID: "x", Description: "Taxi", Amount: 9, CreatedBy: "x",
		}); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		for _, e := range expenses {
			if e.GroupID != group.ID {
				t.Errorf("expense %s belongs to group %s", e.ID, e.GroupID)
			}
		}
	})

	t.Run("DeleteExpense removes row", func(t *testing.T) {
		expense := &models.Expense{GroupID: group.ID, PayerID: "bob", Description: "Beer", Amount: 12, CreatedBy: "bob"}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_Settlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Flat", Members: []string{"a", "b"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateSettlement with empty note stores NULL", func(t *testing.T) {
		settlement := &models.Settlement{
			GroupID:      group.ID,
			FromMemberID: "b",
			ToMemberID:   "a",
			Amount:       25.5,
			CreatedBy:    "b",
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Note != "" {
			t.Errorf("Note = %q, want empty", got.Note)
		}
		if got.FromMemberID != "b" || got.ToMemberID != "a" || got.Amount != 25.5 {
			t.Errorf("GetSettlement = %+v", got)
		}
	})

	t.Run("note round trips", func(t *testing.T) {
		settlement := &models.Settlement{
			GroupID:      group.ID,
			FromMemberID: "a",
			ToMemberID:   "b",
			Amount:       5,
			Note:         "venmo",
			CreatedBy:    "a",
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Note != "venmo" {
			t.Errorf("Note = %q, want venmo", got.Note)
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID || byEmail.DisplayName != "Alice" {
		t.Errorf("GetUserByEmail = %+v", byEmail)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("GetUserByID email = %s", byID.Email)
	}

	if err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Dup", "hash")); err == nil {
		t.Error("expected duplicate email insert to fail")
	}

	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
