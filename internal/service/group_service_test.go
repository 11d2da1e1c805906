package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-service-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGroupService_CRUD(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	ctx := context.Background()

	group, err := groups.CreateGroup(ctx, "Roommates", []string{"alice", "bob", "carol"})
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	got, err := groups.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roommates", got.Name)
	assert.Equal(t, []string{"alice", "bob", "carol"}, got.Members)

	got.Name = "Flatmates"
	got.Members = append(got.Members, "dave")
	updated, err := groups.UpdateGroup(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Flatmates", updated.Name)
	assert.Len(t, updated.Members, 4)

	all, err := groups.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, groups.DeleteGroup(ctx, group.ID))
	_, err = groups.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGroupService_CreateGroupRequiresMembers(t *testing.T) {
	groups := NewGroupService(newTestStore(t))

	_, err := groups.CreateGroup(context.Background(), "Empty", nil)
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestGroupService_GetGroupBalances(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store)
	ctx := context.Background()

	group, err := groups.CreateGroup(ctx, "Trip", []string{"alice", "bob"})
	require.NoError(t, err)

	_, err = expenses.AddExpense(ctx, group.ID, "alice", "Hotel", 100, "alice")
	require.NoError(t, err)

	report, err := groups.GetGroupBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, report.TotalSpent, 0.01)

	// alice fronted 100 split two ways: +50 for her, -50 for bob.
	require.Len(t, report.Balances, 2)
	assert.Equal(t, "alice", report.Balances[0].MemberID)
	assert.InDelta(t, 50, report.Balances[0].Balance, 0.01)
	assert.Equal(t, "bob", report.Balances[1].MemberID)
	assert.InDelta(t, -50, report.Balances[1].Balance, 0.01)

	require.Len(t, report.Payments, 1)
	assert.Equal(t, "bob", report.Payments[0].FromID)
	assert.Equal(t, "alice", report.Payments[0].ToID)
	assert.InDelta(t, 50, report.Payments[0].Amount, 0.01)

	// Paying the suggestion settles the group.
	_, err = settlements.AddSettlement(ctx, group.ID, "bob", "alice", 50, "", "bob")
	require.NoError(t, err)

	settled, err := groups.GetGroupBalances(ctx, group.ID)
	require.NoError(t, err)
	for _, b := range settled.Balances {
		assert.InDelta(t, 0, b.Balance, 0.01)
	}
	assert.Empty(t, settled.Payments)
}

func TestGroupService_BalancesDecoratedWithDisplayNames(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	expenses := NewExpenseService(store)
	ctx := context.Background()

	// One member has a registered account; the other is a bare name.
	user := models.NewUser("alice@example.com", "Alice W", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	group, err := groups.CreateGroup(ctx, "Mixed", []string{user.ID, "bob"})
	require.NoError(t, err)
	_, err = expenses.AddExpense(ctx, group.ID, user.ID, "Dinner", 30, user.ID)
	require.NoError(t, err)

	report, err := groups.GetGroupBalances(ctx, group.ID)
	require.NoError(t, err)

	byID := map[string]MemberBalance{}
	for _, b := range report.Balances {
		byID[b.MemberID] = b
	}
	assert.Equal(t, "Alice W", byID[user.ID].DisplayName)
	assert.Equal(t, "bob", byID["bob"].DisplayName)
}

func TestGroupService_BalancesForUnknownGroup(t *testing.T) {
	groups := NewGroupService(newTestStore(t))

	_, err := groups.GetGroupBalances(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
