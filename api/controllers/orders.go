package controllers

import (
	"net/http"
	"strings"
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
	"github.com/agrovale/pomar-backend/pkg/pagination"
)

type createOrderLineRequest struct {
	FruitID       uuid.UUID       `json:"fruit_id" validate:"required"`
	RequestedQty  decimal.Decimal `json:"requested_qty" validate:"required"`
	RequestedUnit string          `json:"requested_unit" validate:"required"`
}

type createOrderRequest struct {
	ClientID           uuid.UUID                `json:"client_id" validate:"required"`
	RequestedHarvestAt *time.Time               `json:"requested_harvest_at,omitempty"`
	Notes              *string                  `json:"notes,omitempty"`
	Lines              []createOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.CreateOrderInput{
			ClientID:           req.ClientID,
			RequestedHarvestAt: req.RequestedHarvestAt,
			Notes:              sanitizeNotes(req.Notes),
		}
		for _, line := range req.Lines {
			unit, err := enums.ParseUnit(line.RequestedUnit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid requested unit"))
				return
			}
			input.Lines = append(input.Lines, orders.CreateOrderLineInput{
				FruitID:       line.FruitID,
				RequestedQty:  line.RequestedQty,
				RequestedUnit: unit,
			})
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		var filters orders.OrderFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("client_id")); raw != "" {
			clientID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid client id filter"))
				return
			}
			filters.ClientID = &clientID
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateOrderRequest struct {
	RequestedHarvestAt *time.Time       `json:"requested_harvest_at,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	FreightAmount      *decimal.Decimal `json:"freight_amount,omitempty"`
	TaxAmount          *decimal.Decimal `json:"tax_amount,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	DamageAmount       *decimal.Decimal `json:"damage_amount,omitempty"`
}

func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateBasicFields(r.Context(), orders.UpdateBasicFieldsInput{
			OrderID:            orderID,
			RequestedHarvestAt: req.RequestedHarvestAt,
			Notes:              sanitizeNotes(req.Notes),
			FreightAmount:      req.FreightAmount,
			TaxAmount:          req.TaxAmount,
			DiscountAmount:     req.DiscountAmount,
			DamageAmount:       req.DamageAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type harvestLineRequest struct {
	LineID            uuid.UUID        `json:"line_id" validate:"required"`
	HarvestedQtyKg    *decimal.Decimal `json:"harvested_qty_kg,omitempty"`
	HarvestedQtyCrate *decimal.Decimal `json:"harvested_qty_crate,omitempty"`
	OwnFieldID        *uuid.UUID       `json:"own_field_id,omitempty"`
	SupplierFieldID   *uuid.UUID       `json:"supplier_field_id,omitempty"`
}

type recordHarvestRequest struct {
	HarvestedAt *time.Time           `json:"harvested_at,omitempty"`
	Lines       []harvestLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func RecordHarvest(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req recordHarvestRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.RecordHarvestInput{OrderID: orderID, HarvestedAt: req.HarvestedAt}
		for _, line := range req.Lines {
			input.Lines = append(input.Lines, orders.HarvestLineInput{
				LineID:            line.LineID,
				HarvestedQtyKg:    line.HarvestedQtyKg,
				HarvestedQtyCrate: line.HarvestedQtyCrate,
				OwnFieldID:        line.OwnFieldID,
				SupplierFieldID:   line.SupplierFieldID,
			})
		}

		order, err := svc.RecordHarvest(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type pricingLineRequest struct {
	LineID     uuid.UUID       `json:"line_id" validate:"required"`
	PricedUnit *string         `json:"priced_unit,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price" validate:"required"`
}

type setPricingRequest struct {
	Lines          []pricingLineRequest `json:"lines" validate:"required,min=1,dive"`
	FreightAmount  *decimal.Decimal     `json:"freight_amount,omitempty"`
	TaxAmount      *decimal.Decimal     `json:"tax_amount,omitempty"`
	DiscountAmount *decimal.Decimal     `json:"discount_amount,omitempty"`
	DamageAmount   *decimal.Decimal     `json:"damage_amount,omitempty"`
}

func SetPricing(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req setPricingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.SetPricingInput{
			OrderID:        orderID,
			FreightAmount:  req.FreightAmount,
			TaxAmount:      req.TaxAmount,
			DiscountAmount: req.DiscountAmount,
			DamageAmount:   req.DamageAmount,
		}
		for _, line := range req.Lines {
			in := orders.PricingLineInput{LineID: line.LineID, UnitPrice: line.UnitPrice}
			if line.PricedUnit != nil {
				unit, err := enums.ParseUnit(*line.PricedUnit)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priced unit"))
					return
				}
				in.PricedUnit = &unit
			}
			input.Lines = append(input.Lines, in)
		}

		order, err := svc.SetPricing(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func FinalizeOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Finalize(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Cancel(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "orderID")
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}

func sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	clean := validators.SanitizeString(*notes, 2000)
	return &clean
}
