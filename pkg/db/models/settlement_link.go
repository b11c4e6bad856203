package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementLink ties one settlement item to one harvest cost record for the
// linked amount. The (item, record) pair is unique so link creation is
// idempotent.
type SettlementLink struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID       uuid.UUID          `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_settlement_links_item_record"`
	CostRecordID uuid.UUID          `gorm:"column:cost_record_id;type:uuid;not null;uniqueIndex:idx_settlement_links_item_record"`
	Amount       decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	CostRecord   *HarvestCostRecord `gorm:"foreignKey:CostRecordID"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
