package service

import (
	"context"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// ExpenseService manages group expenses.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpense records a new expense against a group. The payer must be on
// the group's roster and the amount strictly positive.
func (s *ExpenseService) AddExpense(ctx context.Context, groupID, payerID, description string, amount float64, createdBy string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(payerID) {
		return nil, ErrUnknownMember
	}

	expense := &models.Expense{
		GroupID:     groupID,
		PayerID:     payerID,
		Description: description,
		Amount:      amount,
		CreatedBy:   createdBy,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("expense recorded", "expense_id", expense.ID, "group_id", groupID, "amount", amount)
	return expense, nil
}

// ListExpenses retrieves all expenses for a group, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense, verifying it belongs to the group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != groupID {
		return storage.ErrNotFound
	}
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("expense deleted", "expense_id", expenseID, "group_id", groupID)
	return nil
}
