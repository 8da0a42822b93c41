// Package app arma la aplicación completa: configuración, logger, base de
// datos, esquema, datos iniciales y casos de uso. La interfaz gráfica (o
// cualquier otro frente) consume App como única puerta de entrada.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/application/auth"
	"github.com/EzerZuniga/gestion-comercial/internal/application/inventory"
	"github.com/EzerZuniga/gestion-comercial/internal/application/purchases"
	"github.com/EzerZuniga/gestion-comercial/internal/application/reports"
	"github.com/EzerZuniga/gestion-comercial/internal/application/sales"
	"github.com/EzerZuniga/gestion-comercial/internal/application/usecase"
	"github.com/EzerZuniga/gestion-comercial/internal/infrastructure/pdf"
	"github.com/EzerZuniga/gestion-comercial/internal/infrastructure/sqldb"
	"github.com/EzerZuniga/gestion-comercial/pkg/config"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

// App agrupa los casos de uso ya cableados sobre una base de datos abierta.
type App struct {
	Config *config.Config
	Log    *logger.Logger

	Auth      *auth.UseCase
	Ledger    *inventory.LedgerUseCase
	Sales     *sales.CreateSaleUseCase
	Receipts  *sales.ReceiptUseCase
	Purchases *purchases.CreatePurchaseUseCase
	Products  *usecase.ProductUseCase
	Suppliers *usecase.SupplierUseCase
	Workers   *usecase.WorkerUseCase
	Users     *usecase.UserUseCase
	Company   *usecase.CompanyUseCase
	Reports   *reports.UseCase

	db *sqlx.DB
}

// New carga la configuración, abre la base de datos, asegura el esquema,
// siembra los datos iniciales si hace falta y cablea los casos de uso.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		LogsDir: cfg.Paths.Logs,
	})

	db, err := sqldb.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := sqldb.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := sqldb.Seed(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}

	txRunner := sqldb.NewTxRunner(db)
	productRepo := sqldb.NewProductRepository(db)
	supplierRepo := sqldb.NewSupplierRepository(db)
	workerRepo := sqldb.NewWorkerRepository(db)
	userRepo := sqldb.NewUserRepository(db)
	companyRepo := sqldb.NewCompanyRepository(db)
	saleRepo := sqldb.NewSaleRepository(db)
	purchaseRepo := sqldb.NewPurchaseRepository(db)
	movRepo := sqldb.NewMovementRepository(db)
	reportRepo := sqldb.NewReportRepository(db)

	a := &App{
		Config:    cfg,
		Log:       log,
		Auth:      auth.NewUseCase(userRepo, log),
		Ledger:    inventory.NewLedgerUseCase(txRunner, movRepo, log),
		Sales:     sales.NewCreateSaleUseCase(txRunner, saleRepo, cfg.Tax.IVARate, log),
		Purchases: purchases.NewCreatePurchaseUseCase(txRunner, purchaseRepo, supplierRepo, cfg.Tax.IVARate, log),
		Products:  usecase.NewProductUseCase(productRepo, supplierRepo),
		Suppliers: usecase.NewSupplierUseCase(supplierRepo),
		Workers:   usecase.NewWorkerUseCase(workerRepo),
		Users:     usecase.NewUserUseCase(userRepo),
		Company:   usecase.NewCompanyUseCase(companyRepo),
		Reports:   reports.NewUseCase(reportRepo),
		db:        db,
	}
	a.Receipts = sales.NewReceiptUseCase(saleRepo, productRepo, companyRepo, pdf.NewMarotoPDFGenerator())

	log.Info().Str("backend", cfg.DB.Backend).Msg("aplicación inicializada")
	return a, nil
}

// Close libera la conexión a la base de datos.
func (a *App) Close() error {
	return a.db.Close()
}
