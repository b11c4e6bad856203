package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
)

// CreateOrderLineInput is one fruit entry of a new order.
type CreateOrderLineInput struct {
	FruitID       uuid.UUID
	RequestedQty  decimal.Decimal
	RequestedUnit enums.Unit
}

// CreateOrderInput captures everything required to open an order.
type CreateOrderInput struct {
	ClientID           uuid.UUID
	RequestedHarvestAt *time.Time
	Notes              *string
	Lines              []CreateOrderLineInput
}

// UpdateBasicFieldsInput mutates non-structural order fields. Nil pointers
// leave the stored value untouched.
type UpdateBasicFieldsInput struct {
	OrderID            uuid.UUID
	RequestedHarvestAt *time.Time
	Notes              *string
	FreightAmount      *decimal.Decimal
	TaxAmount          *decimal.Decimal
	DiscountAmount     *decimal.Decimal
	DamageAmount       *decimal.Decimal
}

// HarvestLineInput records what was actually picked for one line. Exactly one
// of OwnFieldID/SupplierFieldID must be set.
type HarvestLineInput struct {
	LineID            uuid.UUID
	HarvestedQtyKg    *decimal.Decimal
	HarvestedQtyCrate *decimal.Decimal
	OwnFieldID        *uuid.UUID
	SupplierFieldID   *uuid.UUID
}

// RecordHarvestInput closes the harvest phase of an order.
type RecordHarvestInput struct {
	OrderID     uuid.UUID
	HarvestedAt *time.Time
	Lines       []HarvestLineInput
}

// PricingLineInput sets the priced unit and unit price for one line. A nil
// PricedUnit lets the ledger resolve the effective unit from stored state.
type PricingLineInput struct {
	LineID     uuid.UUID
	PricedUnit *enums.Unit
	UnitPrice  decimal.Decimal
}

// SetPricingInput prices the order after harvest.
type SetPricingInput struct {
	OrderID        uuid.UUID
	Lines          []PricingLineInput
	FreightAmount  *decimal.Decimal
	TaxAmount      *decimal.Decimal
	DiscountAmount *decimal.Decimal
	DamageAmount   *decimal.Decimal
}

// RecordPaymentInput registers a received amount against an order.
type RecordPaymentInput struct {
	OrderID            uuid.UUID
	PaidAt             *time.Time
	Amount             decimal.Decimal
	Method             enums.PaymentMethod
	DestinationAccount *string
	ExternalRef        *string
	Notes              *string
}

// UpdatePaymentInput corrects a previously recorded payment. Nil pointers
// leave the stored value untouched.
type UpdatePaymentInput struct {
	PaymentID          uuid.UUID
	PaidAt             *time.Time
	Amount             *decimal.Decimal
	Method             *enums.PaymentMethod
	DestinationAccount *string
	ExternalRef        *string
	Notes              *string
}

// OrderFilters narrows order listings.
type OrderFilters struct {
	Status   *enums.OrderStatus
	ClientID *uuid.UUID
}

// OrderList is one cursor page of orders.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}
