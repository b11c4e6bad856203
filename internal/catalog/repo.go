package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) FruitByID(ctx context.Context, id uuid.UUID) (*models.Fruit, error) {
	var fruit models.Fruit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&fruit).Error; err != nil {
		return nil, err
	}
	return &fruit, nil
}

func (r *repository) FieldByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	var field models.Field
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *repository) SupplierFieldByID(ctx context.Context, id uuid.UUID) (*models.SupplierField, error) {
	var field models.SupplierField
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *repository) CrewByID(ctx context.Context, id uuid.UUID) (*models.Crew, error) {
	var crew models.Crew
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}
