package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrovale/pomar-backend/api/controllers"
	"github.com/agrovale/pomar-backend/api/middleware"
	"github.com/agrovale/pomar-backend/internal/orders"
	"github.com/agrovale/pomar-backend/internal/reconciliation"
	"github.com/agrovale/pomar-backend/pkg/config"
	"github.com/agrovale/pomar-backend/pkg/db"
	"github.com/agrovale/pomar-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	gatherer prometheus.Gatherer,
	ordersSvc orders.Service,
	reconciliationSvc reconciliation.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", controllers.CreateOrder(ordersSvc, logg))
		r.Get("/", controllers.ListOrders(ordersSvc, logg))

		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", controllers.GetOrder(ordersSvc, logg))
			r.Patch("/", controllers.UpdateOrder(ordersSvc, logg))
			r.Delete("/", controllers.DeleteOrder(ordersSvc, logg))

			r.Post("/harvest", controllers.RecordHarvest(ordersSvc, logg))
			r.Post("/pricing", controllers.SetPricing(ordersSvc, logg))
			r.Post("/finalize", controllers.FinalizeOrder(ordersSvc, logg))
			r.Post("/cancel", controllers.CancelOrder(ordersSvc, logg))

			r.Post("/payments", controllers.RecordPayment(ordersSvc, logg))

			r.Route("/reconciliation", func(r chi.Router) {
				r.Get("/", controllers.DiagnoseReconciliation(reconciliationSvc, logg))
				r.Post("/", controllers.ApplyReconciliation(reconciliationSvc, logg))
			})
		})
	})

	r.Route("/api/v1/payments/{paymentID}", func(r chi.Router) {
		r.Patch("/", controllers.UpdatePayment(ordersSvc, logg))
		r.Delete("/", controllers.DeletePayment(ordersSvc, logg))
	})

	return r
}
