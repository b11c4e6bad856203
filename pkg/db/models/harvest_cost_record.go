package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// HarvestCostRecord is what the orchard owes a crew for harvesting one fruit
// of one order. The settlement matcher links records to settlement items and
// flips them to paid; the payroll reports downstream consume the result.
type HarvestCostRecord struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID               `gorm:"column:order_id;type:uuid;not null;index"`
	CrewID        uuid.UUID               `gorm:"column:crew_id;type:uuid;not null"`
	FruitID       uuid.UUID               `gorm:"column:fruit_id;type:uuid;not null"`
	HarvestedQty  decimal.Decimal         `gorm:"column:harvested_qty;type:numeric(12,3);not null;default:0"`
	CostAmount    *decimal.Decimal        `gorm:"column:cost_amount;type:numeric(12,2)"`
	PaymentStatus enums.CostPaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	Paid          bool                    `gorm:"column:paid;not null;default:false"`
	PaidAt        *time.Time              `gorm:"column:paid_at"`
	Crew          *Crew                   `gorm:"foreignKey:CrewID"`
	Links         []SettlementLink        `gorm:"foreignKey:CostRecordID"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
