package sqldb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/internal/infrastructure/sqldb"
	"github.com/EzerZuniga/gestion-comercial/pkg/config"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

// openTestDB abre una base SQLite en un archivo temporal con el esquema creado.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqldb.Open(ctx, config.DBConfig{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqldb.EnsureSchema(ctx, db))
	// Idempotente: una segunda pasada no debe fallar.
	require.NoError(t, sqldb.EnsureSchema(ctx, db))
	return db
}

func seedTestUser(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	id, err := sqldb.NewUserRepository(db).Create(context.Background(), &entity.User{
		Username: "admin", PasswordHash: "x$y", Role: entity.RoleAdmin,
		Active: true, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func newTestProduct(code string, stock int) *entity.Product {
	return &entity.Product{
		Code: code, Name: "Producto " + code, Category: "Test",
		PurchasePrice: decimal.RequireFromString("900.50"),
		SalePrice:     decimal.NewFromInt(1290),
		Stock:         stock, StockMin: 5, StockMax: 50,
		Active: true, CreatedAt: time.Now(),
	}
}

func TestProductRepo_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := sqldb.NewProductRepository(db)

	id, err := repo.Create(ctx, newTestProduct("P001", 10))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "P001", got.Code)
	assert.True(t, got.PurchasePrice.Equal(decimal.RequireFromString("900.50")),
		"precio leído: %s", got.PurchasePrice)
	assert.Equal(t, 10, got.Stock)
	assert.True(t, got.Active)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing, "fila inexistente devuelve (nil, nil)")

	got.Name = "Renombrado"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", again.Name)

	require.NoError(t, repo.Deactivate(ctx, id))
	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductRepo_CodigoUnico(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := sqldb.NewProductRepository(db)

	_, err := repo.Create(ctx, newTestProduct("P001", 0))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestProduct("P001", 0))
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr, "la colisión de índice único se traduce a error de validación")
	assert.Contains(t, valErr.Message, "P001")
}

func TestTxRunner_RollbackNoDejaRastro(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	productRepo := sqldb.NewProductRepository(db)

	id, err := productRepo.Create(ctx, newTestProduct("P001", 10))
	require.NoError(t, err)
	userID := seedTestUser(t, db)

	boom := errors.New("boom")
	err = sqldb.NewTxRunner(db).Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		txProducts repository.ProductRepository,
	) error {
		if err := txProducts.UpdateStock(ctx, id, 99); err != nil {
			return err
		}
		if _, err := movRepo.Create(ctx, &entity.InventoryMovement{
			ProductID: id, Kind: entity.MovementIn, Quantity: 89,
			StockBefore: 10, StockAfter: 99, UserID: userID, CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := productRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock, "el stock vuelve al valor previo")
	movs, err := sqldb.NewMovementRepository(db).ListByProduct(ctx, id, 10)
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento se descartó con la transacción")
}

func TestSaleRepo_CountByDayYDetalles(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	userID := seedTestUser(t, db)
	repo := sqldb.NewSaleRepository(db)

	now := time.Now()
	n, err := repo.CountByDay(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	sale := &entity.Sale{
		DocNumber: "B-20260829-0001", Date: now,
		Subtotal: decimal.NewFromInt(500), IVA: decimal.NewFromInt(95),
		Total: decimal.NewFromInt(595), UserID: userID, CreatedAt: now,
	}
	saleID, err := repo.Create(ctx, sale)
	require.NoError(t, err)

	productID, err := sqldb.NewProductRepository(db).Create(ctx, newTestProduct("P001", 10))
	require.NoError(t, err)
	_, err = repo.CreateDetail(ctx, &entity.SaleDetail{
		SaleID: saleID, ProductID: productID, Quantity: 5,
		UnitPrice: decimal.NewFromInt(100), LineTotal: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	n, err = repo.CountByDay(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByID(ctx, saleID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Details, 1)
	assert.Equal(t, 5, got.Details[0].Quantity)

	// Número de boleta duplicado rechazado por el índice único.
	_, err = repo.Create(ctx, sale)
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSeed_EsIdempotente(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	log := logger.Nop()

	require.NoError(t, sqldb.Seed(ctx, db, log))
	require.NoError(t, sqldb.Seed(ctx, db, log))

	users, err := sqldb.NewUserRepository(db).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, users, 2, "una sola siembra de usuarios")

	products, err := sqldb.NewProductRepository(db).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestReportRepo_KPIs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	products := sqldb.NewProductRepository(db)

	low := newTestProduct("P001", 2) // bajo el mínimo (5)
	ok := newTestProduct("P002", 20)
	out := newTestProduct("P003", 0)
	for _, p := range []*entity.Product{low, ok, out} {
		_, err := products.Create(ctx, p)
		require.NoError(t, err)
	}

	kpis, err := sqldb.NewReportRepository(db).InventoryKPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), kpis.LowStock, "P001 y P003")
	assert.Equal(t, int64(1), kpis.OutOfStock)
	assert.Equal(t, int64(0), kpis.OverStock)

	lowList, err := sqldb.NewReportRepository(db).LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, lowList, 2)
	assert.Equal(t, "P003", lowList[0].Code, "el más crítico primero")
}
