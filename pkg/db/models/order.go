package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// Order is a client's fruit purchase order tracked from creation through
// harvest, pricing and payment to finalization. FinalAmount and
// ReceivedAmount are derived columns: the ledger recomputes them inside the
// same transaction as any mutation that touches lines, adjustments or
// payments.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code               string            `gorm:"column:code;not null;uniqueIndex"`
	ClientID           uuid.UUID         `gorm:"column:client_id;type:uuid;not null"`
	Status             enums.OrderStatus `gorm:"column:status;type:text;not null;default:'created'"`
	RequestedHarvestAt *time.Time        `gorm:"column:requested_harvest_at"`
	HarvestedAt        *time.Time        `gorm:"column:harvested_at"`
	FreightAmount      decimal.Decimal   `gorm:"column:freight_amount;type:numeric(12,2);not null;default:0"`
	TaxAmount          decimal.Decimal   `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	DiscountAmount     decimal.Decimal   `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	DamageAmount       decimal.Decimal   `gorm:"column:damage_amount;type:numeric(12,2);not null;default:0"`
	FinalAmount        decimal.Decimal   `gorm:"column:final_amount;type:numeric(12,2);not null;default:0"`
	ReceivedAmount     decimal.Decimal   `gorm:"column:received_amount;type:numeric(12,2);not null;default:0"`
	Notes              *string           `gorm:"column:notes"`
	Lines              []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments           []Payment         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
