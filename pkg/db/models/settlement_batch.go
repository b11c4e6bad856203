package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// SettlementBatch is one bulk-transfer request submitted to the banking
// provider. Submission itself happens outside this service; the matcher only
// consumes the per-item results.
type SettlementBatch struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Channel         enums.SettlementChannel `gorm:"column:channel;type:text;not null"`
	ExternalBatchID *string                 `gorm:"column:external_batch_id"`
	SubmittedAt     *time.Time              `gorm:"column:submitted_at"`
	Items           []SettlementItem        `gorm:"foreignKey:BatchID"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
