// Package sales implementa el flujo de venta: validación de líneas, número
// de boleta, totales con IVA y descarga de stock vía el ledger, todo en una
// transacción.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/application/inventory"
	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
	"github.com/EzerZuniga/gestion-comercial/pkg/rut"
)

// CreateSaleUseCase registra ventas de forma transaccional.
type CreateSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	ivaRate  decimal.Decimal
	log      *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso. ivaRate es la tasa de IVA
// vigente (0.19 por defecto en la configuración).
func NewCreateSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, ivaRate decimal.Decimal, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, saleRepo: saleRepo, ivaRate: ivaRate, log: log}
}

// SaleItemInput es una línea del carrito. Si UnitPrice es nil se usa el
// precio de venta vigente del producto.
type SaleItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice *decimal.Decimal
}

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	CustomerName string
	CustomerRUT  string
	Items        []SaleItemInput
	// DocNumber fuerza un número de boleta; vacío genera el siguiente del día.
	DocNumber string
}

// Create valida el carrito y registra la venta: cabecera, líneas y un
// movimiento de salida por línea, en una sola transacción. Si alguna línea
// no tiene stock suficiente nada queda persistido.
func (uc *CreateSaleUseCase) Create(ctx context.Context, s *session.AppSession, input SaleInput) (*entity.Sale, error) {
	if !s.Can(session.ActionVentas) {
		return nil, domain.NewAuthorizationError("sin permiso para registrar ventas")
	}
	items, err := mergeItems(input.Items)
	if err != nil {
		return nil, err
	}
	if input.CustomerRUT != "" && !rut.Validate(input.CustomerRUT) {
		return nil, domain.NewValidationError("RUT de cliente inválido: %s", input.CustomerRUT)
	}

	now := time.Now()
	var sale *entity.Sale
	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		docNumber := input.DocNumber
		if docNumber == "" {
			n, err := saleRepo.CountByDay(ctx, now)
			if err != nil {
				return err
			}
			docNumber = fmt.Sprintf("B-%s-%04d", now.Format("20060102"), n+1)
		}

		sale = &entity.Sale{
			DocNumber:    docNumber,
			Date:         now,
			CustomerName: strings.TrimSpace(input.CustomerName),
			CustomerRUT:  strings.TrimSpace(input.CustomerRUT),
			UserID:       s.UserID(),
			CreatedAt:    now,
		}
		for _, item := range items {
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %d: %w", item.ProductID, domain.ErrNotFound)
			}
			if !product.Active {
				return domain.NewValidationError("el producto %s está inactivo", product.Name)
			}
			unitPrice := product.SalePrice
			if item.UnitPrice != nil {
				if item.UnitPrice.IsNegative() {
					return domain.NewValidationError("el precio unitario no puede ser negativo")
				}
				unitPrice = *item.UnitPrice
			}
			sale.Details = append(sale.Details, entity.SaleDetail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			})
		}
		sale.ComputeTotals(uc.ivaRate)

		saleID, err := saleRepo.Create(ctx, sale)
		if err != nil {
			return err
		}
		sale.ID = saleID

		reason := "venta " + docNumber
		for i := range sale.Details {
			sale.Details[i].SaleID = saleID
			detailID, err := saleRepo.CreateDetail(ctx, &sale.Details[i])
			if err != nil {
				return err
			}
			sale.Details[i].ID = detailID

			_, err = inventory.ApplyOutInTx(ctx, movRepo, productRepo,
				sale.Details[i].ProductID, sale.Details[i].Quantity, s.UserID(),
				reason, &saleID, entity.RefSale)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("boleta", sale.DocNumber).Str("total", sale.Total.String()).
		Int("lineas", len(sale.Details)).Msg("venta registrada")
	return sale, nil
}

// GetByID devuelve la venta con sus líneas, o error si no existe.
func (uc *CreateSaleUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.Sale, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar ventas")
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %d: %w", id, domain.ErrNotFound)
	}
	return sale, nil
}

// ListByDate devuelve las ventas del rango [from, to).
func (uc *CreateSaleUseCase) ListByDate(ctx context.Context, s *session.AppSession, from, to time.Time) ([]*entity.Sale, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar ventas")
	}
	return uc.saleRepo.ListByDate(ctx, from, to)
}

// mergeItems valida las líneas y consolida las repetidas del mismo producto
// sumando cantidades, conservando el orden de primera aparición. Un precio
// unitario explícito en una línea repetida reemplaza al anterior.
func mergeItems(items []SaleItemInput) ([]SaleItemInput, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("la venta debe tener al menos una línea")
	}
	merged := make([]SaleItemInput, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, domain.NewValidationError("línea sin producto")
		}
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("la cantidad debe ser mayor que cero")
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			if item.UnitPrice != nil {
				merged[i].UnitPrice = item.UnitPrice
			}
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
