package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía
// el ledger de inventario, nunca desde aquí.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo}
}

// CreateProductInput datos para crear un producto. El stock inicial siempre
// es cero; las existencias entran por compra o ajuste.
type CreateProductInput struct {
	Code          string
	Name          string
	Description   string
	Category      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	StockMin      int
	StockMax      int
	SupplierID    *int64
}

// Create valida y crea un producto nuevo. Requiere rol administrador.
func (uc *ProductUseCase) Create(ctx context.Context, s *session.AppSession, in CreateProductInput) (*entity.Product, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.NewValidationError("código y nombre son obligatorios")
	}
	if err := validatePrices(in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	if err := validateStockRange(in.StockMin, in.StockMax); err != nil {
		return nil, err
	}
	if in.SupplierID != nil {
		if err := uc.requireActiveSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("ya existe un producto con código %s", in.Code)
	}

	p := &entity.Product{
		Code:          in.Code,
		Name:          in.Name,
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         0,
		StockMin:      in.StockMin,
		StockMax:      in.StockMax,
		SupplierID:    in.SupplierID,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if p.ID, err = uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProductInput campos modificables de un producto; nil deja el campo
// como está. Al menos un campo debe venir informado.
type UpdateProductInput struct {
	Code          *string
	Name          *string
	Description   *string
	Category      *string
	PurchasePrice *decimal.Decimal
	SalePrice     *decimal.Decimal
	StockMin      *int
	StockMax      *int
	SupplierID    *int64
}

func (in *UpdateProductInput) empty() bool {
	return in.Code == nil && in.Name == nil && in.Description == nil &&
		in.Category == nil && in.PurchasePrice == nil && in.SalePrice == nil &&
		in.StockMin == nil && in.StockMax == nil && in.SupplierID == nil
}

// Update aplica una actualización parcial. Requiere rol administrador.
func (uc *ProductUseCase) Update(ctx context.Context, s *session.AppSession, id int64, in UpdateProductInput) (*entity.Product, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, domain.NewValidationError("nada que actualizar")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}

	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.NewValidationError("el código no puede quedar vacío")
		}
		if code != p.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.NewValidationError("ya existe un producto con código %s", code)
			}
		}
		p.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("el nombre no puede quedar vacío")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if err := validatePrices(p.PurchasePrice, p.SalePrice); err != nil {
		return nil, err
	}
	if in.StockMin != nil {
		p.StockMin = *in.StockMin
	}
	if in.StockMax != nil {
		p.StockMax = *in.StockMax
	}
	if err := validateStockRange(p.StockMin, p.StockMax); err != nil {
		return nil, err
	}
	if in.SupplierID != nil {
		if err := uc.requireActiveSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		p.SupplierID = in.SupplierID
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve el producto, o error si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.Product, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// GetByCode devuelve el producto por código, o (nil, nil) si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, s *session.AppSession, code string) (*entity.Product, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	return uc.repo.GetByCode(ctx, strings.TrimSpace(code))
}

// List devuelve los productos; includeInactive solo está permitido a administradores.
func (uc *ProductUseCase) List(ctx context.Context, s *session.AppSession, includeInactive bool) ([]*entity.Product, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	if includeInactive && !s.IsAdmin() {
		includeInactive = false
	}
	return uc.repo.List(ctx, includeInactive)
}

// Search busca productos activos por código, nombre o categoría.
func (uc *ProductUseCase) Search(ctx context.Context, s *session.AppSession, text string) ([]*entity.Product, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	return uc.repo.Search(ctx, strings.TrimSpace(text))
}

// Deactivate da de baja lógica el producto. Requiere rol administrador.
func (uc *ProductUseCase) Deactivate(ctx context.Context, s *session.AppSession, id int64) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *ProductUseCase) requireActiveSupplier(ctx context.Context, id int64) error {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	if !supplier.Active {
		return domain.NewValidationError("el proveedor %s está inactivo", supplier.Name)
	}
	return nil
}

func validatePrices(purchase, sale decimal.Decimal) error {
	if purchase.IsNegative() || sale.IsNegative() {
		return domain.NewValidationError("los precios no pueden ser negativos")
	}
	if sale.LessThan(purchase) {
		return domain.NewValidationError("el precio de venta no puede ser menor que el de compra")
	}
	return nil
}

func validateStockRange(min, max int) error {
	if min < 0 || max < 0 {
		return domain.NewValidationError("los niveles de stock no pueden ser negativos")
	}
	if max > 0 && min > max {
		return domain.NewValidationError("el stock mínimo no puede superar al máximo")
	}
	return nil
}
