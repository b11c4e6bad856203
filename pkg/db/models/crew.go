package models

import (
	"time"

	"github.com/google/uuid"
)

// Crew is a harvest crew that gets paid through settlement batches. PayeeKey
// holds the crew's registered banking key; ResponsibleName is the person the
// transfers are usually addressed to.
type Crew struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	PayeeKey        *string   `gorm:"column:payee_key"`
	ResponsibleName *string   `gorm:"column:responsible_name"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
