package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
	"github.com/agrovale/pomar-backend/pkg/money"
)

// SettlementItem is one transfer entry inside a settlement batch. The memo is
// expected to carry the order's human-readable code; the payee fields carry
// whatever identity the provider echoed back.
type SettlementItem struct {
	ID              uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BatchID         uuid.UUID                  `gorm:"column:batch_id;type:uuid;not null;index"`
	Batch           *SettlementBatch           `gorm:"foreignKey:BatchID"`
	SentAmount      decimal.Decimal            `gorm:"column:sent_amount;type:numeric(12,2);not null"`
	Status          enums.SettlementItemStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Succeeded       bool                       `gorm:"column:succeeded;not null;default:false"`
	Memo            string                     `gorm:"column:memo;not null;default:''"`
	PayeeKey        *string                    `gorm:"column:payee_key"`
	PayeeName       *string                    `gorm:"column:payee_name"`
	ProviderPayload map[string]any             `gorm:"column:provider_payload;type:jsonb;serializer:json"`
	Links           []SettlementLink           `gorm:"foreignKey:ItemID"`
	CreatedAt       time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// Gap is the portion of the sent amount not yet explained by links.
func (s *SettlementItem) Gap() decimal.Decimal {
	linked := decimal.Zero
	for _, link := range s.Links {
		linked = linked.Add(link.Amount)
	}
	return money.Round2(s.SentAmount.Sub(linked))
}

// Matchable reports whether the provider confirmed this item and it can take
// part in reconciliation.
func (s *SettlementItem) Matchable() bool {
	return s.Status == enums.SettlementItemStatusProcessed && s.Succeeded
}
