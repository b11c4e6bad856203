package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/metrics"
	"github.com/agrovale/pomar-backend/pkg/pagination"
)

// WithMetrics wraps a ledger service so every operation reports duration and
// outcome. A nil metrics handle returns the service unchanged.
func WithMetrics(svc Service, m *metrics.LedgerMetrics) Service {
	if m == nil {
		return svc
	}
	return &instrumentedService{next: svc, metrics: m}
}

type instrumentedService struct {
	next    Service
	metrics *metrics.LedgerMetrics
}

func (s *instrumentedService) observe(op string, start time.Time, err error) {
	s.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(op)
		return
	}
	s.metrics.IncSuccess(op)
}

func (s *instrumentedService) Create(ctx context.Context, input CreateOrderInput) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()
	return s.next.Create(ctx, input)
}

func (s *instrumentedService) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.next.Get(ctx, orderID)
}

func (s *instrumentedService) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	return s.next.List(ctx, params, filters)
}

func (s *instrumentedService) UpdateBasicFields(ctx context.Context, input UpdateBasicFieldsInput) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("update_basic_fields", start, err) }()
	return s.next.UpdateBasicFields(ctx, input)
}

func (s *instrumentedService) RecordHarvest(ctx context.Context, input RecordHarvestInput) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("record_harvest", start, err) }()
	return s.next.RecordHarvest(ctx, input)
}

func (s *instrumentedService) SetPricing(ctx context.Context, input SetPricingInput) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("set_pricing", start, err) }()
	return s.next.SetPricing(ctx, input)
}

func (s *instrumentedService) RecordPayment(ctx context.Context, input RecordPaymentInput) (payment *models.Payment, err error) {
	start := time.Now()
	defer func() { s.observe("record_payment", start, err) }()
	return s.next.RecordPayment(ctx, input)
}

func (s *instrumentedService) UpdatePayment(ctx context.Context, input UpdatePaymentInput) (payment *models.Payment, err error) {
	start := time.Now()
	defer func() { s.observe("update_payment", start, err) }()
	return s.next.UpdatePayment(ctx, input)
}

func (s *instrumentedService) DeletePayment(ctx context.Context, paymentID uuid.UUID) (err error) {
	start := time.Now()
	defer func() { s.observe("delete_payment", start, err) }()
	return s.next.DeletePayment(ctx, paymentID)
}

func (s *instrumentedService) Finalize(ctx context.Context, orderID uuid.UUID) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("finalize", start, err) }()
	return s.next.Finalize(ctx, orderID)
}

func (s *instrumentedService) Cancel(ctx context.Context, orderID uuid.UUID) (order *models.Order, err error) {
	start := time.Now()
	defer func() { s.observe("cancel", start, err) }()
	return s.next.Cancel(ctx, orderID)
}

func (s *instrumentedService) Delete(ctx context.Context, orderID uuid.UUID) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()
	return s.next.Delete(ctx, orderID)
}
