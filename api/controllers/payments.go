package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/api/responses"
	"github.com/agrovale/pomar-backend/api/validators"
	"github.com/agrovale/pomar-backend/internal/orders"
	"github.com/agrovale/pomar-backend/pkg/enums"
	pkgerrors "github.com/agrovale/pomar-backend/pkg/errors"
	"github.com/agrovale/pomar-backend/pkg/logger"
)

type recordPaymentRequest struct {
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	Method             string          `json:"method" validate:"required"`
	DestinationAccount *string         `json:"destination_account,omitempty"`
	ExternalRef        *string         `json:"external_ref,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
}

func RecordPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(req.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		payment, err := svc.RecordPayment(r.Context(), orders.RecordPaymentInput{
			OrderID:            orderID,
			PaidAt:             req.PaidAt,
			Amount:             req.Amount,
			Method:             method,
			DestinationAccount: req.DestinationAccount,
			ExternalRef:        req.ExternalRef,
			Notes:              sanitizeNotes(req.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

type updatePaymentRequest struct {
	PaidAt             *time.Time       `json:"paid_at,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	Method             *string          `json:"method,omitempty"`
	DestinationAccount *string          `json:"destination_account,omitempty"`
	ExternalRef        *string          `json:"external_ref,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
}

func UpdatePayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := parsePaymentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updatePaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.UpdatePaymentInput{
			PaymentID:          paymentID,
			PaidAt:             req.PaidAt,
			Amount:             req.Amount,
			DestinationAccount: req.DestinationAccount,
			ExternalRef:        req.ExternalRef,
			Notes:              sanitizeNotes(req.Notes),
		}
		if req.Method != nil {
			method, err := enums.ParsePaymentMethod(*req.Method)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			input.Method = &method
		}

		payment, err := svc.UpdatePayment(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

func DeletePayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := parsePaymentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePayment(r.Context(), paymentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func parsePaymentID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "paymentID")
	paymentID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment id")
	}
	return paymentID, nil
}
