package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// OrderLine is one fruit-type entry within an order. Quantities exist in up
// to two units of measure; the priced unit decides which harvested quantity
// the line total is computed from. Exactly one of OwnFieldID/SupplierFieldID
// is set once harvest has been recorded.
type OrderLine struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	FruitID           uuid.UUID        `gorm:"column:fruit_id;type:uuid;not null"`
	RequestedQty      decimal.Decimal  `gorm:"column:requested_qty;type:numeric(12,3);not null;default:0"`
	RequestedUnit     enums.Unit       `gorm:"column:requested_unit;type:text;not null;default:'kg'"`
	HarvestedQtyKg    *decimal.Decimal `gorm:"column:harvested_qty_kg;type:numeric(12,3)"`
	HarvestedQtyCrate *decimal.Decimal `gorm:"column:harvested_qty_crate;type:numeric(12,3)"`
	PricedUnit        *enums.Unit      `gorm:"column:priced_unit;type:text"`
	UnitPrice         *decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	LineTotal         decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null;default:0"`
	OwnFieldID        *uuid.UUID       `gorm:"column:own_field_id;type:uuid"`
	SupplierFieldID   *uuid.UUID       `gorm:"column:supplier_field_id;type:uuid"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
