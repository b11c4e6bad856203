package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/internal/catalog"
	"github.com/agrovale/pomar-backend/pkg/clock"
	"github.com/agrovale/pomar-backend/pkg/db"
	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
	pkgerrors "github.com/agrovale/pomar-backend/pkg/errors"
	"github.com/agrovale/pomar-backend/pkg/money"
	"github.com/agrovale/pomar-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the order ledger. Every mutating operation runs inside a
// single transaction: line/payment writes, total recompute and status
// derivation either all commit or all roll back.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateBasicFields(ctx context.Context, input UpdateBasicFieldsInput) (*models.Order, error)
	RecordHarvest(ctx context.Context, input RecordHarvestInput) (*models.Order, error)
	SetPricing(ctx context.Context, input SetPricingInput) (*models.Order, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error)
	UpdatePayment(ctx context.Context, input UpdatePaymentInput) (*models.Payment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	Finalize(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo    Repository
	catalog catalog.Repository
	tx      txRunner
	clock   clock.Clock
}

// NewService builds the order ledger with the required dependencies.
func NewService(repo Repository, catalogRepo catalog.Repository, tx txRunner, clk clock.Clock) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &service{repo: repo, catalog: catalogRepo, tx: tx, clock: clk}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.ClientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one order line required")
	}
	for _, line := range input.Lines {
		if line.FruitID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fruit id required on every line")
		}
		if !line.RequestedQty.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity must be positive")
		}
		if !line.RequestedUnit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid unit %q", line.RequestedUnit))
		}
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cat := s.catalog.WithTx(tx)

		if _, err := cat.ClientByID(ctx, input.ClientID); err != nil {
			return loadErr(err, "client")
		}
		for _, line := range input.Lines {
			if _, err := cat.FruitByID(ctx, line.FruitID); err != nil {
				return loadErr(err, "fruit")
			}
		}

		year := s.clock.Now().Year()
		highest, err := repo.MaxCodeWithPrefix(ctx, CodePrefixForYear(year))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan order codes")
		}
		code, err := NextCode(highest, year)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order code")
		}

		order := &models.Order{
			ID:                 uuid.New(),
			Code:               code,
			ClientID:           input.ClientID,
			Status:             enums.OrderStatusCreated,
			RequestedHarvestAt: input.RequestedHarvestAt,
			Notes:              input.Notes,
			FreightAmount:      decimal.Zero,
			TaxAmount:          decimal.Zero,
			DiscountAmount:     decimal.Zero,
			DamageAmount:       decimal.Zero,
			FinalAmount:        decimal.Zero,
			ReceivedAmount:     decimal.Zero,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "idx_orders_code") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order code already taken, retry")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		lines := make([]models.OrderLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			lines = append(lines, models.OrderLine{
				ID:            uuid.New(),
				OrderID:       order.ID,
				FruitID:       line.FruitID,
				RequestedQty:  line.RequestedQty,
				RequestedUnit: line.RequestedUnit,
				LineTotal:     decimal.Zero,
			})
		}
		if err := repo.CreateOrderLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
		}
		order.Lines = lines
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, loadErr(err, "order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) UpdateBasicFields(ctx context.Context, input UpdateBasicFieldsInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be edited")
		}

		updates := map[string]any{}
		if input.RequestedHarvestAt != nil {
			updates["requested_harvest_at"] = *input.RequestedHarvestAt
			order.RequestedHarvestAt = input.RequestedHarvestAt
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
			order.Notes = input.Notes
		}

		adjustmentsChanged := false
		setAdjustment := func(column string, target *decimal.Decimal, value *decimal.Decimal) {
			if value == nil {
				return
			}
			rounded := money.Round2(*value)
			updates[column] = rounded
			*target = rounded
			adjustmentsChanged = true
		}
		setAdjustment("freight_amount", &order.FreightAmount, input.FreightAmount)
		setAdjustment("tax_amount", &order.TaxAmount, input.TaxAmount)
		setAdjustment("discount_amount", &order.DiscountAmount, input.DiscountAmount)
		setAdjustment("damage_amount", &order.DamageAmount, input.DamageAmount)

		if adjustmentsChanged {
			final := finalTotal(order.Lines, order)
			updates["final_amount"] = final
			order.FinalAmount = final
			status := DeriveStatus(order.Status, final, order.ReceivedAmount)
			if status != order.Status {
				updates["status"] = status
				order.Status = status
			}
		}

		if len(updates) > 0 {
			if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
			}
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) RecordHarvest(ctx context.Context, input RecordHarvestInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one harvest line required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cat := s.catalog.WithTx(tx)

		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		switch order.Status {
		case enums.OrderStatusCreated, enums.OrderStatusAwaitingHarvest:
		default:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "harvest can only be recorded before it is done")
		}

		byID := make(map[uuid.UUID]*models.OrderLine, len(order.Lines))
		for i := range order.Lines {
			byID[order.Lines[i].ID] = &order.Lines[i]
		}

		for _, in := range input.Lines {
			line, ok := byID[in.LineID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order line not found")
			}

			hasOwn := in.OwnFieldID != nil
			hasSupplier := in.SupplierFieldID != nil
			if hasOwn == hasSupplier {
				return pkgerrors.New(pkgerrors.CodeValidation, "exactly one of own field or supplier field required")
			}
			if hasOwn {
				if _, err := cat.FieldByID(ctx, *in.OwnFieldID); err != nil {
					return loadErr(err, "field")
				}
			} else {
				if _, err := cat.SupplierFieldByID(ctx, *in.SupplierFieldID); err != nil {
					return loadErr(err, "supplier field")
				}
			}

			updates := map[string]any{
				"own_field_id":      in.OwnFieldID,
				"supplier_field_id": in.SupplierFieldID,
			}
			if in.HarvestedQtyKg != nil {
				updates["harvested_qty_kg"] = *in.HarvestedQtyKg
				line.HarvestedQtyKg = in.HarvestedQtyKg
			}
			if in.HarvestedQtyCrate != nil {
				updates["harvested_qty_crate"] = *in.HarvestedQtyCrate
				line.HarvestedQtyCrate = in.HarvestedQtyCrate
			}
			line.OwnFieldID = in.OwnFieldID
			line.SupplierFieldID = in.SupplierFieldID
			if err := repo.UpdateOrderLine(ctx, line.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order line")
			}
		}

		harvestedAt := s.clock.Now()
		if input.HarvestedAt != nil {
			harvestedAt = *input.HarvestedAt
		}
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
			"harvested_at": harvestedAt,
			"status":       enums.OrderStatusHarvestDone,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		order.HarvestedAt = &harvestedAt
		order.Status = enums.OrderStatusHarvestDone
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) SetPricing(ctx context.Context, input SetPricingInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	for _, in := range input.Lines {
		if in.LineID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id required on every pricing line")
		}
		if !in.UnitPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "unit price must be positive")
		}
		if in.PricedUnit != nil && !in.PricedUnit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid unit %q", *in.PricedUnit))
		}
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if order.Status != enums.OrderStatusHarvestDone {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "pricing requires a completed harvest")
		}

		explicit := make(map[uuid.UUID]PricingLineInput, len(input.Lines))
		for _, in := range input.Lines {
			explicit[in.LineID] = in
		}

		// Every line is recomputed with the same effective-unit resolution,
		// whether or not it was part of this request.
		for i := range order.Lines {
			line := &order.Lines[i]
			in, touched := explicit[line.ID]
			var explicitUnit *enums.Unit
			if touched {
				explicitUnit = in.PricedUnit
				price := money.Round2(in.UnitPrice)
				line.UnitPrice = &price
			}
			unit := resolveEffectiveUnit(*line, explicitUnit)
			qty := pricedQuantity(*line, unit)
			total := decimal.Zero
			if line.UnitPrice != nil {
				total = money.Round2(qty.Mul(*line.UnitPrice))
			}
			line.PricedUnit = &unit
			line.LineTotal = total

			if err := repo.UpdateOrderLine(ctx, line.ID, map[string]any{
				"priced_unit": unit,
				"unit_price":  line.UnitPrice,
				"line_total":  total,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order line")
			}
		}

		setAdjustment := func(target *decimal.Decimal, value *decimal.Decimal) {
			if value != nil {
				*target = money.Round2(*value)
			}
		}
		setAdjustment(&order.FreightAmount, input.FreightAmount)
		setAdjustment(&order.TaxAmount, input.TaxAmount)
		setAdjustment(&order.DiscountAmount, input.DiscountAmount)
		setAdjustment(&order.DamageAmount, input.DamageAmount)

		final := finalTotal(order.Lines, order)
		order.FinalAmount = final
		order.Status = enums.OrderStatusPriced
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
			"freight_amount":  order.FreightAmount,
			"tax_amount":      order.TaxAmount,
			"discount_amount": order.DiscountAmount,
			"damage_amount":   order.DamageAmount,
			"final_amount":    final,
			"status":          enums.OrderStatusPriced,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}

	var created *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if !order.Status.AllowsPaymentEntry() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order does not accept payments in its current status")
		}

		amount := money.Round2(input.Amount)
		if !amount.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment amount must be positive")
		}
		received := money.Sum(append(paymentAmounts(order.Payments), amount)...)
		if received.GreaterThan(order.FinalAmount) {
			return pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment would exceed the order total").
				WithDetails(map[string]any{"final_amount": order.FinalAmount, "would_total": received})
		}

		paidAt := s.clock.Now()
		if input.PaidAt != nil {
			paidAt = *input.PaidAt
		}
		payment := &models.Payment{
			ID:                 uuid.New(),
			OrderID:            order.ID,
			PaidAt:             paidAt,
			Amount:             amount,
			Method:             input.Method,
			DestinationAccount: input.DestinationAccount,
			ExternalRef:        input.ExternalRef,
			Notes:              input.Notes,
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}

		if err := s.settleReceived(ctx, repo, order); err != nil {
			return err
		}
		created = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdatePayment(ctx context.Context, input UpdatePaymentInput) (*models.Payment, error) {
	if input.PaymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	if input.Method != nil && !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", *input.Method))
	}

	var updated *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		payment, err := repo.FindPayment(ctx, input.PaymentID)
		if err != nil {
			return loadErr(err, "payment")
		}
		order, err := repo.FindOrderForUpdate(ctx, payment.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if !order.Status.InPaymentTracking() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payments can no longer be edited")
		}

		updates := map[string]any{}
		if input.Amount != nil {
			amount := money.Round2(*input.Amount)
			if !amount.IsPositive() {
				return pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment amount must be positive")
			}
			others := decimal.Zero
			for _, p := range order.Payments {
				if p.ID == payment.ID {
					continue
				}
				others = others.Add(p.Amount)
			}
			if money.Round2(others.Add(amount)).GreaterThan(order.FinalAmount) {
				return pkgerrors.New(pkgerrors.CodeInvalidAmount, "payment would exceed the order total")
			}
			updates["amount"] = amount
			payment.Amount = amount
		}
		if input.PaidAt != nil {
			updates["paid_at"] = *input.PaidAt
			payment.PaidAt = *input.PaidAt
		}
		if input.Method != nil {
			updates["method"] = *input.Method
			payment.Method = *input.Method
		}
		if input.DestinationAccount != nil {
			updates["destination_account"] = *input.DestinationAccount
			payment.DestinationAccount = input.DestinationAccount
		}
		if input.ExternalRef != nil {
			updates["external_ref"] = *input.ExternalRef
			payment.ExternalRef = input.ExternalRef
		}
		if input.Notes != nil {
			updates["notes"] = *input.Notes
			payment.Notes = input.Notes
		}

		if len(updates) > 0 {
			if err := repo.UpdatePayment(ctx, payment.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
			}
		}
		if err := s.settleReceived(ctx, repo, order); err != nil {
			return err
		}
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	if paymentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		payment, err := repo.FindPayment(ctx, paymentID)
		if err != nil {
			return loadErr(err, "payment")
		}
		order, err := repo.FindOrderForUpdate(ctx, payment.OrderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if !order.Status.InPaymentTracking() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payments can no longer be edited")
		}
		if err := repo.DeletePayment(ctx, paymentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
		}
		return s.settleReceived(ctx, repo, order)
	})
}

func (s *service) Finalize(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, orderID, enums.OrderStatusFinalized, func(order *models.Order) error {
		if order.Status != enums.OrderStatusPaymentDone {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only fully paid orders can be finalized")
		}
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, orderID, enums.OrderStatusCanceled, func(order *models.Order) error {
		if order.Status == enums.OrderStatusFinalized {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "finalized orders cannot be canceled")
		}
		return nil
	})
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, orderID)
		if err != nil {
			return loadErr(err, "order")
		}
		switch order.Status {
		case enums.OrderStatusCreated, enums.OrderStatusCanceled:
		default:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only created or canceled orders can be deleted")
		}
		if err := repo.DeleteOrder(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func (s *service) transition(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus, guard func(*models.Order) error) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderForUpdate(ctx, orderID)
		if err != nil {
			return loadErr(err, "order")
		}
		if order.Status == target {
			updated = order
			return nil
		}
		if err := guard(order); err != nil {
			return err
		}
		if err := repo.UpdateOrder(ctx, orderID, map[string]any{"status": target}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = target
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// settleReceived recomputes the received amount from the surviving payments
// and re-derives the status. It must run with the order row still locked by
// the surrounding transaction.
func (s *service) settleReceived(ctx context.Context, repo Repository, order *models.Order) error {
	payments, err := repo.FindPaymentsByOrder(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload payments")
	}
	received := money.Sum(paymentAmounts(payments)...)
	status := DeriveStatus(order.Status, order.FinalAmount, received)

	if err := repo.UpdateOrder(ctx, order.ID, map[string]any{
		"received_amount": received,
		"status":          status,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order totals")
	}
	order.ReceivedAmount = received
	order.Status = status
	order.Payments = payments
	return nil
}

func paymentAmounts(payments []models.Payment) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}

// finalTotal derives the payable total from line totals plus freight and tax
// minus discount and damage.
func finalTotal(lines []models.OrderLine, order *models.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.LineTotal)
	}
	return money.Round2(sum.
		Add(order.FreightAmount).
		Add(order.TaxAmount).
		Sub(order.DiscountAmount).
		Sub(order.DamageAmount))
}

// resolveEffectiveUnit applies the canonical priority: explicit request,
// previously stored priced unit, secondary unit when it was harvested,
// primary unit. The same order applies to single-line edits and full
// recomputes.
func resolveEffectiveUnit(line models.OrderLine, explicit *enums.Unit) enums.Unit {
	if explicit != nil {
		return *explicit
	}
	if line.PricedUnit != nil {
		return *line.PricedUnit
	}
	if line.HarvestedQtyCrate != nil && line.HarvestedQtyCrate.IsPositive() {
		return enums.UnitCrate
	}
	return enums.UnitKilogram
}

// pricedQuantity picks the harvested quantity matching the effective unit,
// falling back to the primary actual quantity when the matching one is
// absent.
func pricedQuantity(line models.OrderLine, unit enums.Unit) decimal.Decimal {
	if unit == enums.UnitCrate && line.HarvestedQtyCrate != nil {
		return *line.HarvestedQtyCrate
	}
	return money.OrZero(line.HarvestedQtyKg)
}

func loadErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, what+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+what)
}
