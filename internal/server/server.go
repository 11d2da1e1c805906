// Package server exposes SplitLedger's services over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

// Server holds the services and wires them to routes.
type Server struct {
	auth        *service.AuthService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	tokens      *auth.JWTManager
	validate    *validator.Validate
}

// New creates a Server over the given services.
func New(
	authSvc *service.AuthService,
	groupSvc *service.GroupService,
	expenseSvc *service.ExpenseService,
	settlementSvc *service.SettlementService,
	tokens *auth.JWTManager,
) *Server {
	return &Server{
		auth:        authSvc,
		groups:      groupSvc,
		expenses:    expenseSvc,
		settlements: settlementSvc,
		tokens:      tokens,
		validate:    validator.New(),
	}
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.tokens))

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", s.handleListGroups)
				r.Post("/", s.handleCreateGroup)

				r.Route("/{groupID}", func(r chi.Router) {
					r.Get("/", s.handleGetGroup)
					r.Put("/", s.handleUpdateGroup)
					r.Delete("/", s.handleDeleteGroup)
					r.Get("/balances", s.handleGetBalances)

					r.Route("/expenses", func(r chi.Router) {
						r.Get("/", s.handleListExpenses)
						r.Post("/", s.handleAddExpense)
						r.Delete("/{expenseID}", s.handleDeleteExpense)
					})

					r.Route("/settlements", func(r chi.Router) {
						r.Get("/", s.handleListSettlements)
						r.Post("/", s.handleAddSettlement)
						r.Delete("/{settlementID}", s.handleDeleteSettlement)
					})
				})
			})
		})
	})

	return r
}
