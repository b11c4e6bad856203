package controllers

import (
	"net/http"

	"github.com/agrovale/pomar-backend/api/responses"
	"github.com/agrovale/pomar-backend/internal/reconciliation"
	"github.com/agrovale/pomar-backend/pkg/logger"
)

func DiagnoseReconciliation(svc reconciliation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		report, err := svc.Diagnose(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func ApplyReconciliation(svc reconciliation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		result, err := svc.Apply(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"order_code":     result.Report.OrderCode,
				"links_created":  result.LinksCreated,
				"links_existing": result.LinksExisting,
				"records_paid":   result.RecordsPaid,
			})
			logg.Info(ctx, "reconciliation.applied")
		}
		responses.WriteSuccess(w, result)
	}
}
