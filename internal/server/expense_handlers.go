package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
)

type addExpenseRequest struct {
	PayerID     string  `json:"payer_id" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type expenseResponse struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id"`
	PayerID     string  `json:"payer_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CreatedAt   int64   `json:"created_at"`
	CreatedBy   string  `json:"created_by"`
}

func toExpenseResponse(expense *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		PayerID:     expense.PayerID,
		Description: expense.Description,
		Amount:      expense.Amount,
		CreatedAt:   expense.CreatedAt,
		CreatedBy:   expense.CreatedBy,
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := s.decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	expense, err := s.expenses.AddExpense(
		r.Context(),
		chi.URLParam(r, "groupID"),
		req.PayerID,
		req.Description,
		req.Amount,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.expenses.DeleteExpense(r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
