package service

import (
	"context"
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// SettlementService manages real-world payments between group members.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// AddSettlement records a payment between two roster members. The engine
// itself tolerates self-settlements, but they are meaningless to users, so
// they are rejected here along with off-roster parties.
func (s *SettlementService) AddSettlement(ctx context.Context, groupID, fromMemberID, toMemberID string, amount float64, note, createdBy string) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromMemberID == toMemberID {
		return nil, ErrSelfSettlement
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(fromMemberID) || !group.HasMember(toMemberID) {
		return nil, ErrUnknownMember
	}

	settlement := &models.Settlement{
		GroupID:      groupID,
		FromMemberID: fromMemberID,
		ToMemberID:   toMemberID,
		Amount:       amount,
		Note:         note,
		CreatedBy:    createdBy,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", groupID,
		"from", fromMemberID,
		"to", toMemberID,
		"amount", amount,
	)
	return settlement, nil
}

// ListSettlements retrieves all settlements for a group, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}

// DeleteSettlement removes a settlement, verifying it belongs to the group.
func (s *SettlementService) DeleteSettlement(ctx context.Context, groupID, settlementID string) error {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return err
	}
	if settlement.GroupID != groupID {
		return storage.ErrNotFound
	}
	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		return err
	}
	slog.Info("settlement deleted", "settlement_id", settlementID, "group_id", groupID)
	return nil
}
