package sales

import (
	"context"
	"fmt"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta confirmada.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// Generate produce el PDF de la boleta indicada.
func (uc *ReceiptUseCase) Generate(ctx context.Context, s *session.AppSession, saleID int64) ([]byte, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar ventas")
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %d: %w", saleID, domain.ErrNotFound)
	}

	products := make(map[int64]*entity.Product, len(sale.Details))
	for _, d := range sale.Details {
		if _, ok := products[d.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[d.ProductID] = p
		}
	}

	company, err := uc.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(sale, products, company)
}
