package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
)

// Repository defines the persistence surface of the settlement matcher. It is
// deliberately narrow: the matcher reads candidates, inserts links and flips
// cost records to paid, nothing else.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	// UnlinkedCostRecords returns the order's cost records that still need
	// settlement: non-null cost amount, payment status pending or processing,
	// and no existing links. Crew is preloaded for the identity tie-breaks.
	UnlinkedCostRecords(ctx context.Context, orderID uuid.UUID) ([]models.HarvestCostRecord, error)
	// CandidateItems returns processed, succeeded settlement items of the
	// given channel whose trimmed memo equals memo. Links and their cost
	// records are preloaded so gap, crew and paid-at evidence come for free.
	CandidateItems(ctx context.Context, channel enums.SettlementChannel, memo string) ([]models.SettlementItem, error)
	// CreateLink inserts the link unless the (item, record) pair already
	// exists; the bool reports whether a row was actually written.
	CreateLink(ctx context.Context, link *models.SettlementLink) (bool, error)
	MarkRecordPaid(ctx context.Context, recordID uuid.UUID, paidAt time.Time) error
}
