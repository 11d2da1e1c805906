package service

import (
	"context"
	"log/slog"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// GroupService manages groups and computes their balances.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// MemberBalance is a net balance decorated with a display name.
type MemberBalance struct {
	MemberID    string
	DisplayName string
	Balance     float64
}

// SuggestedPayment is a settlement suggestion decorated with display names.
type SuggestedPayment struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   float64
}

// GroupBalances is the full balance report for one group.
type GroupBalances struct {
	GroupID    string
	TotalSpent float64
	Balances   []MemberBalance
	Payments   []SuggestedPayment
}

// CreateGroup creates a new group with the given name and roster.
func (s *GroupService) CreateGroup(ctx context.Context, name string, members []string) (*models.Group, error) {
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}

	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "members", len(members))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// UpdateGroup replaces a group's name and roster.
func (s *GroupService) UpdateGroup(ctx context.Context, group *models.Group) (*models.Group, error) {
	if len(group.Members) == 0 {
		return nil, ErrEmptyRoster
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}
	return s.store.GetGroup(ctx, group.ID)
}

// DeleteGroup removes a group and everything in it.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("group deleted", "group_id", groupID)
	return nil
}

// GetGroupBalances computes net balances and suggested payments for a group
// from a fresh snapshot of its expenses, settlements, and roster. The engine
// works on bare member IDs; display names are attached afterwards.
func (s *GroupService) GetGroupBalances(ctx context.Context, groupID string) (*GroupBalances, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if len(group.Members) == 0 {
		// Engine precondition: an empty roster has no meaningful balances.
		return &GroupBalances{GroupID: groupID}, nil
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ledgerExpenses := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		ledgerExpenses[i] = ledger.Expense{PayerID: e.PayerID, Amount: e.Amount}
	}
	ledgerSettlements := make([]ledger.Settlement, len(settlements))
	for i, st := range settlements {
		ledgerSettlements[i] = ledger.Settlement{FromID: st.FromMemberID, ToID: st.ToMemberID, Amount: st.Amount}
	}

	result := ledger.Compute(ledgerExpenses, ledgerSettlements, group.Members)
	names := s.displayNames(ctx, group.Members)

	report := &GroupBalances{
		GroupID:    groupID,
		TotalSpent: result.TotalSpent,
		Balances:   make([]MemberBalance, len(result.Balances)),
		Payments:   make([]SuggestedPayment, len(result.Transfers)),
	}
	for i, b := range result.Balances {
		report.Balances[i] = MemberBalance{
			MemberID:    b.MemberID,
			DisplayName: names[b.MemberID],
			Balance:     b.Balance,
		}
	}
	for i, tr := range result.Transfers {
		report.Payments[i] = SuggestedPayment{
			FromID:   tr.FromID,
			FromName: names[tr.FromID],
			ToID:     tr.ToID,
			ToName:   names[tr.ToID],
			Amount:   tr.Amount,
		}
	}

	slog.Info("balances computed",
		"group_id", groupID,
		"expenses", len(expenses),
		"settlements", len(settlements),
		"payments", len(report.Payments),
	)
	return report, nil
}

// displayNames maps member IDs to display names. Members whose ID matches a
// registered user get that user's display name; everyone else keeps their
// raw identifier. A lookup failure falls back to the identifier rather than
// failing the whole report.
func (s *GroupService) displayNames(ctx context.Context, memberIDs []string) map[string]string {
	names := make(map[string]string, len(memberIDs))
	for _, id := range memberIDs {
		names[id] = id
		if user, err := s.store.GetUserByID(ctx, id); err == nil {
			names[id] = user.DisplayName
		}
	}
	return names
}
