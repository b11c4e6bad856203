package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
	"github.com/agrovale/pomar-backend/pkg/enums"
	"github.com/agrovale/pomar-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  client_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'created',
  requested_harvest_at DATETIME,
  harvested_at DATETIME,
  freight_amount NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  damage_amount NUMERIC NOT NULL DEFAULT 0,
  final_amount NUMERIC NOT NULL DEFAULT 0,
  received_amount NUMERIC NOT NULL DEFAULT 0,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  fruit_id TEXT NOT NULL,
  requested_qty NUMERIC NOT NULL DEFAULT 0,
  requested_unit TEXT NOT NULL DEFAULT 'kg',
  harvested_qty_kg NUMERIC,
  harvested_qty_crate NUMERIC,
  priced_unit TEXT,
  unit_price NUMERIC,
  line_total NUMERIC NOT NULL DEFAULT 0,
  own_field_id TEXT,
  supplier_field_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	payments := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  paid_at DATETIME NOT NULL,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL,
  destination_account TEXT,
  external_ref TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLines).Error)
	require.NoError(t, db.Exec(payments).Error)
	return db
}

var repoCodeSeq int

func seedOrder(t *testing.T, db *gorm.DB, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	repoCodeSeq++
	order := &models.Order{
		ID:        uuid.New(),
		Code:      fmt.Sprintf("PED-1999-%04d", repoCodeSeq),
		ClientID:  uuid.New(),
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)

	line := &models.OrderLine{
		ID:            uuid.New(),
		OrderID:       order.ID,
		FruitID:       uuid.New(),
		RequestedQty:  d("100"),
		RequestedUnit: enums.UnitKilogram,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(line).Error)
	order.Lines = []models.OrderLine{*line}
	return order
}

func seedPayment(t *testing.T, db *gorm.DB, order *models.Order, amount string, created time.Time) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		ID:        uuid.New(),
		OrderID:   order.ID,
		PaidAt:    created,
		Amount:    d(amount),
		Method:    enums.PaymentMethodPix,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestRepositoryFindOrder_preloads(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	order := seedOrder(t, db, enums.OrderStatusPriced, now)
	seedPayment(t, db, order, "55.50", now)

	got, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, order.Code, got.Code)
	assert.True(t, got.Payments[0].Amount.Equal(d("55.50")))
}

func TestRepositoryFindOrder_notFound(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	clientID := uuid.New()
	older := seedOrder(t, db, enums.OrderStatusCreated, now.Add(-time.Hour))
	newer := seedOrder(t, db, enums.OrderStatusCreated, now)
	require.NoError(t, db.Model(&models.Order{}).Where("id IN ?", []uuid.UUID{older.ID, newer.ID}).Update("client_id", clientID).Error)

	filters := OrderFilters{ClientID: &clientID}
	list, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1}, filters)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	require.NotNil(t, list.NextCursor)

	second, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1, Cursor: *list.NextCursor}, filters)
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, older.ID, second.Orders[0].ID)
	assert.Nil(t, second.NextCursor)
}

func TestRepositoryListOrders_statusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	clientID := uuid.New()
	priced := seedOrder(t, db, enums.OrderStatusPriced, now)
	created := seedOrder(t, db, enums.OrderStatusCreated, now.Add(-time.Minute))
	require.NoError(t, db.Model(&models.Order{}).Where("id IN ?", []uuid.UUID{priced.ID, created.ID}).Update("client_id", clientID).Error)

	status := enums.OrderStatusPriced
	list, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 10}, OrderFilters{Status: &status, ClientID: &clientID})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, priced.ID, list.Orders[0].ID)
}

func TestRepositoryMaxCodeWithPrefix(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	got, err := repo.MaxCodeWithPrefix(context.Background(), "PED-1901-")
	require.NoError(t, err)
	assert.Empty(t, got)

	now := time.Now().UTC()
	for i, code := range []string{"PED-1901-0003", "PED-1901-0011", "PED-1902-0044"} {
		order := seedOrder(t, db, enums.OrderStatusCreated, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("code", code).Error)
	}

	got, err = repo.MaxCodeWithPrefix(context.Background(), "PED-1901-")
	require.NoError(t, err)
	assert.Equal(t, "PED-1901-0011", got)
}

func TestRepositoryUpdateOrder_notFound(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateOrder(context.Background(), uuid.New(), map[string]any{"status": enums.OrderStatusCanceled})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteOrder_cascades(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	order := seedOrder(t, db, enums.OrderStatusCanceled, now)
	seedPayment(t, db, order, "10.00", now)

	require.NoError(t, repo.DeleteOrder(context.Background(), order.ID))

	var lineCount, paymentCount int64
	require.NoError(t, db.Model(&models.OrderLine{}).Where("order_id = ?", order.ID).Count(&lineCount).Error)
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&paymentCount).Error)
	assert.Zero(t, lineCount)
	assert.Zero(t, paymentCount)

	_, err := repo.FindOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
