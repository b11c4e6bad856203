package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrovale/pomar-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  document TEXT,
  phone TEXT,
  email TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS fruits (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  variety TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS crews (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  payee_key TEXT,
  responsible_name TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestCatalogRepository_ClientByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	client := &models.Client{ID: uuid.New(), Name: "Mercado Bom Preço"}
	require.NoError(t, db.Create(client).Error)

	found, err := repo.ClientByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Bom Preço", found.Name)

	_, err = repo.ClientByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCatalogRepository_FruitByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	variety := "Palmer"
	fruit := &models.Fruit{ID: uuid.New(), Name: "Manga", Variety: &variety}
	require.NoError(t, db.Create(fruit).Error)

	found, err := repo.FruitByID(ctx, fruit.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Variety)
	assert.Equal(t, "Palmer", *found.Variety)

	_, err = repo.FruitByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCatalogRepository_CrewByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	key := "crew-pix-key-01"
	crew := &models.Crew{ID: uuid.New(), Name: "Turma do Zé", PayeeKey: &key}
	require.NoError(t, db.Create(crew).Error)

	found, err := repo.CrewByID(ctx, crew.ID)
	require.NoError(t, err)
	require.NotNil(t, found.PayeeKey)
	assert.Equal(t, "crew-pix-key-01", *found.PayeeKey)
}
