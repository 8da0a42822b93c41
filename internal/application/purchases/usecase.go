// Package purchases implementa el flujo de compra a proveedor: número de
// factura, totales con IVA e ingreso de stock vía el ledger, todo en una
// transacción.
package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/application/inventory"
	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

// CreatePurchaseUseCase registra compras de forma transaccional.
type CreatePurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	ivaRate      decimal.Decimal
	log          *logger.Logger
}

// NewCreatePurchaseUseCase construye el caso de uso.
func NewCreatePurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	ivaRate decimal.Decimal,
	log *logger.Logger,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		ivaRate:      ivaRate,
		log:          log,
	}
}

// PurchaseItemInput es una línea de la compra: producto, cantidad y costo
// unitario acordado con el proveedor.
type PurchaseItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// PurchaseInput entrada para registrar una compra.
type PurchaseInput struct {
	SupplierID int64
	Items      []PurchaseItemInput
	// DocNumber fuerza un número de factura; vacío genera el siguiente del día.
	DocNumber string
}

// Create valida y registra la compra: cabecera, líneas y un movimiento de
// entrada por línea, en una sola transacción. Requiere rol administrador.
func (uc *CreatePurchaseUseCase) Create(ctx context.Context, s *session.AppSession, input PurchaseInput) (*entity.Purchase, error) {
	if !s.IsAdmin() {
		return nil, domain.NewAuthorizationError("solo un administrador puede registrar compras")
	}
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("la compra debe tener al menos una línea")
	}
	for _, item := range input.Items {
		if item.ProductID <= 0 {
			return nil, domain.NewValidationError("línea sin producto")
		}
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("la cantidad debe ser mayor que cero")
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError("el precio unitario no puede ser negativo")
		}
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", input.SupplierID, domain.ErrNotFound)
	}
	if !supplier.Active {
		return nil, domain.NewValidationError("el proveedor %s está inactivo", supplier.Name)
	}

	now := time.Now()
	var purchase *entity.Purchase
	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		docNumber := input.DocNumber
		if docNumber == "" {
			n, err := purchaseRepo.CountByDay(ctx, now)
			if err != nil {
				return err
			}
			docNumber = fmt.Sprintf("F-%s-%04d", now.Format("20060102"), n+1)
		}

		purchase = &entity.Purchase{
			DocNumber:  docNumber,
			Date:       now,
			SupplierID: input.SupplierID,
			UserID:     s.UserID(),
			CreatedAt:  now,
		}
		for _, item := range input.Items {
			purchase.Details = append(purchase.Details, entity.PurchaseDetail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		purchase.ComputeTotals(uc.ivaRate)

		purchaseID, err := purchaseRepo.Create(ctx, purchase)
		if err != nil {
			return err
		}
		purchase.ID = purchaseID

		reason := "compra " + docNumber
		for i := range purchase.Details {
			purchase.Details[i].PurchaseID = purchaseID
			detailID, err := purchaseRepo.CreateDetail(ctx, &purchase.Details[i])
			if err != nil {
				return err
			}
			purchase.Details[i].ID = detailID

			_, err = inventory.ApplyInInTx(ctx, movRepo, productRepo,
				purchase.Details[i].ProductID, purchase.Details[i].Quantity, s.UserID(),
				reason, &purchaseID, entity.RefPurchase)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("factura", purchase.DocNumber).Str("total", purchase.Total.String()).
		Int("lineas", len(purchase.Details)).Msg("compra registrada")
	return purchase, nil
}

// GetByID devuelve la compra con sus líneas, o error si no existe.
func (uc *CreatePurchaseUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.Purchase, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar compras")
	}
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("compra %d: %w", id, domain.ErrNotFound)
	}
	return purchase, nil
}

// ListByDate devuelve las compras del rango [from, to).
func (uc *CreatePurchaseUseCase) ListByDate(ctx context.Context, s *session.AppSession, from, to time.Time) ([]*entity.Purchase, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar compras")
	}
	return uc.purchaseRepo.ListByDate(ctx, from, to)
}
