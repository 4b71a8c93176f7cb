package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/loanlink/internal/application"
	"github.com/frahmantamala/loanlink/internal/auth"
	"github.com/frahmantamala/loanlink/internal/loan"
	"github.com/frahmantamala/loanlink/internal/payment"
	"github.com/frahmantamala/loanlink/internal/transport/middleware"
	"github.com/frahmantamala/loanlink/internal/transport/swagger"
	"github.com/frahmantamala/loanlink/internal/user"
)

// RouterDeps bundles everything RegisterAllRoutes wires together.
type RouterDeps struct {
	DB                 *sql.DB
	AuthMiddleware     *auth.Middleware
	LoanHandler        *loan.Handler
	ApplicationHandler *application.Handler
	PaymentHandler     *payment.Handler
	UserHandler        *user.Handler
	ClientOrigin       string
	Logger             *slog.Logger
}

// RegisterAllRoutes mounts the public API. Paths are served at the router
// root so the client keeps its existing URLs.
//
// Gates per route: loan creation and manage-loans need a manager (admin
// passes), user listing and role updates need an admin, my-loans and role
// lookup need any verified identity, everything else is public.
func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)
	authMW := deps.AuthMiddleware

	router.Use(middleware.CORS(deps.ClientOrigin))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Loans
	router.Get("/loans", deps.LoanHandler.GetAllLoans)
	router.Get("/loans/{id}", deps.LoanHandler.GetLoan)
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Use(authMW.RequireManager())
		r.Post("/loans", deps.LoanHandler.CreateLoan)
		r.Get("/manage-loans/{email}", deps.LoanHandler.ManageLoans)
	})

	// Applications
	router.Post("/borrowerLoansApply", deps.ApplicationHandler.Apply)
	router.Get("/pending-applications/{email}", deps.ApplicationHandler.PendingApplications)
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Get("/my-loans", deps.ApplicationHandler.MyLoans)
	})

	// Payments
	router.Post("/create-checkout-session", deps.PaymentHandler.CreateCheckout)
	router.Post("/payment-paid", deps.PaymentHandler.Reconcile)
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Get("/my-payments", deps.PaymentHandler.MyPayments)
	})

	// Users
	router.Post("/user", deps.UserHandler.Upsert)
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Get("/user/role", deps.UserHandler.GetRole)
	})
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Use(authMW.RequireAdmin())
		r.Get("/all-user", deps.UserHandler.ListUsers)
		r.Patch("/update-role", deps.UserHandler.UpdateRole)
	})
}
