package httpserver

import (
	"net/http"
	"time"

	"cardledger-go/internal/config"
	"cardledger-go/internal/transport/httpserver/handler"
	authmw "cardledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewUserAuth()
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/accounts", handlers.Accounts.ListAccounts)
			r.Post("/accounts", handlers.Accounts.CreateAccount)
			r.Get("/accounts/{id}", handlers.Accounts.GetAccount)
			r.Patch("/accounts/{id}", handlers.Accounts.UpdateAccount)
			r.Delete("/accounts/{id}", handlers.Accounts.DeleteAccount)
			r.Get("/accounts/{id}/expenses", handlers.Expenses.ListExpenses)

			r.Get("/expenses", handlers.Expenses.ListExpenses)
			r.Post("/expenses", handlers.Expenses.CreateExpense)
			r.Get("/expenses/{id}", handlers.Expenses.GetExpense)
			r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)

			r.Put("/expenses/{id}/payments/{payment_id}", handlers.Expenses.UpdatePayment)
			r.Post("/expenses/{id}/payments", handlers.Expenses.AddPayment)
			r.Delete("/expenses/{id}/payments/{payment_id}", handlers.Expenses.RemovePayment)
			r.Get("/expenses/{id}/payments/next", handlers.Expenses.NextPayment)

			r.Get("/periods/{year}/{month}", handlers.Periods.GetPeriod)
		})
	})

	return r
}
