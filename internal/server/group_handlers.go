package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/service"
)

type groupRequest struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupResponse(group *models.Group) groupResponse {
	return groupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Members:   group.Members,
		CreatedAt: group.CreatedAt,
	}
}

type memberBalanceResponse struct {
	MemberID    string  `json:"member_id"`
	DisplayName string  `json:"display_name"`
	Balance     float64 `json:"balance"`
}

type suggestedPaymentResponse struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}

type balancesResponse struct {
	GroupID    string                     `json:"group_id"`
	TotalSpent float64                    `json:"total_spent"`
	Balances   []memberBalanceResponse    `json:"balances"`
	Payments   []suggestedPaymentResponse `json:"suggested_payments"`
}

func toBalancesResponse(report *service.GroupBalances) balancesResponse {
	resp := balancesResponse{
		GroupID:    report.GroupID,
		TotalSpent: report.TotalSpent,
		Balances:   make([]memberBalanceResponse, len(report.Balances)),
		Payments:   make([]suggestedPaymentResponse, len(report.Payments)),
	}
	for i, b := range report.Balances {
		resp.Balances[i] = memberBalanceResponse{
			MemberID:    b.MemberID,
			DisplayName: b.DisplayName,
			Balance:     b.Balance,
		}
	}
	for i, p := range report.Payments {
		resp.Payments[i] = suggestedPaymentResponse{
			FromID:   p.FromID,
			FromName: p.FromName,
			ToID:     p.ToID,
			ToName:   p.ToName,
			Amount:   p.Amount,
		}
	}
	return resp
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := s.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Members)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := s.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group := &models.Group{
		ID:      chi.URLParam(r, "groupID"),
		Name:    req.Name,
		Members: req.Members,
	}
	updated, err := s.groups.UpdateGroup(r.Context(), group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(updated))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	report, err := s.groups.GetGroupBalances(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, toBalancesResponse(report))
}
