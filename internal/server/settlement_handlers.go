package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
)

type addSettlementRequest struct {
	FromMemberID string  `json:"from_member_id" validate:"required"`
	ToMemberID   string  `json:"to_member_id" validate:"required,nefield=FromMemberID"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Note         string  `json:"note"`
}

type settlementResponse struct {
	ID           string  `json:"id"`
	GroupID      string  `json:"group_id"`
	FromMemberID string  `json:"from_member_id"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    int64   `json:"created_at"`
	CreatedBy    string  `json:"created_by"`
}

func toSettlementResponse(settlement *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:           settlement.ID,
		GroupID:      settlement.GroupID,
		FromMemberID: settlement.FromMemberID,
		ToMemberID:   settlement.ToMemberID,
		Amount:       settlement.Amount,
		Note:         settlement.Note,
		CreatedAt:    settlement.CreatedAt,
		CreatedBy:    settlement.CreatedBy,
	}
}

func (s *Server) handleAddSettlement(w http.ResponseWriter, r *http.Request) {
	var req addSettlementRequest
	if err := s.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	settlement, err := s.settlements.AddSettlement(
		r.Context(),
		chi.URLParam(r, "groupID"),
		req.FromMemberID,
		req.ToMemberID,
		req.Amount,
		req.Note,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.settlements.ListSettlements(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]settlementResponse, len(settlements))
	for i, st := range settlements {
		resp[i] = toSettlementResponse(st)
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	err := s.settlements.DeleteSettlement(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "settlementID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
