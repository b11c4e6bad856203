package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrovale/pomar-backend/pkg/enums"
)

// Payment is one amount received against an order.
type Payment struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	PaidAt             time.Time           `gorm:"column:paid_at;not null"`
	Amount             decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method             enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	DestinationAccount *string             `gorm:"column:destination_account"`
	ExternalRef        *string             `gorm:"column:external_ref"`
	Notes              *string             `gorm:"column:notes"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
