package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reconciliation repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UnlinkedCostRecords(ctx context.Context, orderID uuid.UUID) ([]models.HarvestCostRecord, error) {
	var records []models.HarvestCostRecord
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Where("cost_amount IS NOT NULL").
		Where("payment_status IN ?", []enums.CostPaymentStatus{
			enums.CostPaymentStatusPending,
			enums.CostPaymentStatusProcessing,
		}).
		Where("NOT EXISTS (SELECT 1 FROM settlement_links WHERE settlement_links.cost_record_id = harvest_cost_records.id)").
		Preload("Crew").
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) CandidateItems(ctx context.Context, channel enums.SettlementChannel, memo string) ([]models.SettlementItem, error) {
	var items []models.SettlementItem
	err := r.db.WithContext(ctx).
		Joins("JOIN settlement_batches ON settlement_batches.id = settlement_items.batch_id").
		Where("settlement_batches.channel = ?", channel).
		Where("settlement_items.status = ?", enums.SettlementItemStatusProcessed).
		Where("settlement_items.succeeded = ?", true).
		Where("TRIM(settlement_items.memo) = ?", memo).
		Preload("Links").
		Preload("Links.CostRecord").
		Order("settlement_items.created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateLink(ctx context.Context, link *models.SettlementLink) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "cost_record_id"}},
			DoNothing: true,
		}).
		Create(link)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) MarkRecordPaid(ctx context.Context, recordID uuid.UUID, paidAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.HarvestCostRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]any{
			"payment_status": enums.CostPaymentStatusPaid,
			"paid":           true,
			"paid_at":        paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
