package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
	"github.com/EzerZuniga/gestion-comercial/pkg/password"
)

// SeedDefaultPassword es la contraseña inicial de los usuarios sembrados.
// Debe cambiarse tras el primer inicio de sesión.
const SeedDefaultPassword = "admin123"

// Seed carga los datos iniciales en una base recién creada: perfil de
// empresa, usuario administrador, un vendedor de ejemplo y un catálogo
// mínimo. No hace nada si la tabla empresas ya tiene datos.
func Seed(ctx context.Context, db *sqlx.DB, log *logger.Logger) error {
	var n int
	if err := sqlx.GetContext(ctx, db, &n, "SELECT COUNT(*) FROM empresas"); err != nil {
		return fmt.Errorf("verificar datos iniciales: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Info().Msg("base de datos vacía, cargando datos iniciales")
	now := time.Now()

	companies := NewCompanyRepository(db)
	if _, err := companies.Create(ctx, &entity.Company{
		Name:      "Mi Negocio",
		RUT:       "76.123.456-0",
		Address:   "Por completar",
		CreatedAt: now,
	}); err != nil {
		return err
	}

	hash, err := password.Hash(SeedDefaultPassword)
	if err != nil {
		return fmt.Errorf("hash de contraseña inicial: %w", err)
	}
	users := NewUserRepository(db)
	seedUsers := []*entity.User{
		{Username: "admin", PasswordHash: hash, Name: "Administrador", Role: entity.RoleAdmin, Active: true, CreatedAt: now},
		{Username: "vendedor", PasswordHash: hash, Name: "Vendedor", Role: entity.RoleTrabajador, Active: true, CreatedAt: now},
	}
	for _, u := range seedUsers {
		if _, err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	suppliers := NewSupplierRepository(db)
	supplierID, err := suppliers.Create(ctx, &entity.Supplier{
		Name:        "Distribuidora Central",
		RUT:         "77.555.444-4",
		MainProduct: "Abarrotes",
		Active:      true,
		CreatedAt:   now,
	})
	if err != nil {
		return err
	}

	products := NewProductRepository(db)
	seedProducts := []*entity.Product{
		{
			Code: "P001", Name: "Arroz 1kg", Category: "Abarrotes",
			PurchasePrice: decimal.NewFromInt(900), SalePrice: decimal.NewFromInt(1290),
			Stock: 0, StockMin: 10, StockMax: 100,
			SupplierID: &supplierID, Active: true, CreatedAt: now,
		},
		{
			Code: "P002", Name: "Azúcar 1kg", Category: "Abarrotes",
			PurchasePrice: decimal.NewFromInt(850), SalePrice: decimal.NewFromInt(1190),
			Stock: 0, StockMin: 10, StockMax: 100,
			SupplierID: &supplierID, Active: true, CreatedAt: now,
		},
		{
			Code: "P003", Name: "Aceite 900ml", Category: "Abarrotes",
			PurchasePrice: decimal.NewFromInt(1600), SalePrice: decimal.NewFromInt(2290),
			Stock: 0, StockMin: 5, StockMax: 60,
			SupplierID: &supplierID, Active: true, CreatedAt: now,
		},
	}
	for _, p := range seedProducts {
		if _, err := products.Create(ctx, p); err != nil {
			return err
		}
	}

	log.Info().Int("usuarios", len(seedUsers)).Int("productos", len(seedProducts)).
		Msg("datos iniciales cargados")
	return nil
}
