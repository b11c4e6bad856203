package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
)

// Repository resolves catalog references the ledger validates against.
// Lookups return gorm.ErrRecordNotFound when the entity is absent; callers
// map that to their own typed error.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FruitByID(ctx context.Context, id uuid.UUID) (*models.Fruit, error)
	FieldByID(ctx context.Context, id uuid.UUID) (*models.Field, error)
	SupplierFieldByID(ctx context.Context, id uuid.UUID) (*models.SupplierField, error)
	CrewByID(ctx context.Context, id uuid.UUID) (*models.Crew, error)
}
