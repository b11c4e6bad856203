package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/pagination"
)

// Repository defines persistence operations for the order ledger tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	// FindOrderForUpdate loads the order holding a row-level lock so the
	// recompute-and-write of derived amounts cannot interleave with a
	// concurrent mutation of the same order.
	FindOrderForUpdate(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	MaxCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	UpdateOrderLine(ctx context.Context, lineID uuid.UUID, updates map[string]any) error
	FindOrderLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLine, error)
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	FindPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, paymentID uuid.UUID, updates map[string]any) error
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	// DeleteOrder removes the order together with its lines and payments.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}
