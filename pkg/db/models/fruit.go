package models

import (
	"time"

	"github.com/google/uuid"
)

// Fruit is a sellable fruit type from the catalog.
type Fruit struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Variety   *string   `gorm:"column:variety"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
