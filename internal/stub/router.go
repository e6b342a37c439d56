package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/laundromat-id/adminctl/internal/pkg/telemetry"
)

// requestIDContext copies chi's request id into the context key the
// slog handler reads, so server-side records carry request_id too.
func requestIDContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(telemetry.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter wires the full REST surface the client expects, plus a
// Prometheus /metrics endpoint outside the API prefix.
func NewRouter(handler *Handler) http.Handler {
	reg := prometheus.NewRegistry()
	metrics := NewServerMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestIDContext)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(handler.requireAuth)

			r.Get("/auth/me", handler.Me)
			r.Post("/auth/logout", handler.Logout)

			r.Get("/customer", handler.ListCustomers)
			r.Post("/customer", handler.CreateCustomer)
			r.Put("/customer/{id}", handler.UpdateCustomer)
			r.Delete("/customer/{id}", handler.DeleteCustomer)

			r.Get("/package", handler.ListPackages)
			r.Post("/package", handler.CreatePackage)
			r.Put("/package/{id}", handler.UpdatePackage)
			r.Delete("/package/{id}", handler.DeletePackage)

			r.Get("/transaction/create-data", handler.TransactionCreateData)
			r.Post("/transaction", handler.CreateTransaction)
			r.Get("/transaction", handler.ListTransactions)
			r.Get("/transaction/{id}", handler.GetTransaction)
			r.Put("/transaction/status/{id}", handler.UpdateLaundryStatus)
			r.Put("/transaction/payment/{id}", handler.UpdatePaymentStatus)

			r.Get("/dashboard/stats", handler.DashboardStats)
			r.Get("/dashboard/charts", handler.DashboardCharts)
		})
	})

	return r
}
