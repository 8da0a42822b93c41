// Package inventory implementa el ledger de inventario: todo cambio de stock
// pasa por aquí y queda registrado como movimiento con stock anterior y nuevo.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

// LedgerUseCase registra movimientos de inventario de forma transaccional
// (entrada, salida, ajuste) con Commit/Rollback.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, log: log}
}

// MovementInput entrada para registrar un movimiento manual de inventario.
type MovementInput struct {
	ProductID int64
	Kind      string // entrada o salida
	Quantity  int
	Reason    string
}

// ApplyMovement registra un movimiento manual (entrada o salida) dentro de
// una transacción. Requiere rol administrador. Devuelve el movimiento con
// stock anterior y nuevo.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, s *session.AppSession, input MovementInput) (*entity.InventoryMovement, error) {
	if !s.IsAdmin() {
		return nil, domain.NewAuthorizationError("solo un administrador puede ajustar inventario")
	}
	if input.Kind != entity.MovementIn && input.Kind != entity.MovementOut {
		return nil, domain.NewValidationError("tipo de movimiento inválido: %s", input.Kind)
	}
	if input.Quantity <= 0 {
		return nil, domain.NewValidationError("la cantidad debe ser mayor que cero")
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		if input.Kind == entity.MovementIn {
			mov, err = ApplyInInTx(ctx, movRepo, productRepo,
				input.ProductID, input.Quantity, s.UserID(), input.Reason, nil, "")
		} else {
			mov, err = ApplyOutInTx(ctx, movRepo, productRepo,
				input.ProductID, input.Quantity, s.UserID(), input.Reason, nil, "")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("producto", mov.ProductID).Str("tipo", mov.Kind).
		Int("cantidad", mov.Quantity).Int("stock", mov.StockAfter).
		Msg("movimiento de inventario registrado")
	return mov, nil
}

// SetStock fija el stock del producto en newStock registrando un movimiento
// de tipo ajuste cuya cantidad es la diferencia absoluta. Si el stock ya es
// el pedido no registra nada y devuelve (nil, nil). Requiere rol administrador.
func (uc *LedgerUseCase) SetStock(ctx context.Context, s *session.AppSession, productID int64, newStock int, reason string) (*entity.InventoryMovement, error) {
	if !s.IsAdmin() {
		return nil, domain.NewAuthorizationError("solo un administrador puede ajustar inventario")
	}
	if newStock < 0 {
		return nil, domain.NewValidationError("el stock no puede ser negativo")
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := mustGetProduct(ctx, productRepo, productID)
		if err != nil {
			return err
		}
		if product.Stock == newStock {
			return nil
		}

		qty := newStock - product.Stock
		if qty < 0 {
			qty = -qty
		}
		m := &entity.InventoryMovement{
			ProductID:   productID,
			Kind:        entity.MovementAdjust,
			Quantity:    qty,
			StockBefore: product.Stock,
			StockAfter:  newStock,
			Reason:      reason,
			UserID:      s.UserID(),
			CreatedAt:   time.Now(),
		}
		if err := productRepo.UpdateStock(ctx, productID, newStock); err != nil {
			return err
		}
		if m.ID, err = movRepo.Create(ctx, m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if mov != nil {
		uc.log.Info().Int64("producto", productID).Int("stock", newStock).
			Msg("stock ajustado")
	}
	return mov, nil
}

// History devuelve los últimos movimientos de un producto, más recientes primero.
func (uc *LedgerUseCase) History(ctx context.Context, s *session.AppSession, productID int64, limit int) ([]*entity.InventoryMovement, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar inventario")
	}
	return uc.movRepo.ListByProduct(ctx, productID, limit)
}

// HistoryByDate devuelve los movimientos del rango [from, to) en orden cronológico.
func (uc *LedgerUseCase) HistoryByDate(ctx context.Context, s *session.AppSession, from, to time.Time) ([]*entity.InventoryMovement, error) {
	if !s.Can(session.ActionConsulta) {
		return nil, domain.NewAuthorizationError("sin permiso para consultar inventario")
	}
	return uc.movRepo.ListByDate(ctx, from, to)
}

// ApplyInInTx registra una entrada dentro de una transacción ya abierta.
// Lo usan este caso de uso y el flujo de compras.
func ApplyInInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID int64, quantity int, userID int64,
	reason string, refID *int64, refKind string,
) (*entity.InventoryMovement, error) {
	product, err := mustGetProduct(ctx, productRepo, productID)
	if err != nil {
		return nil, err
	}
	return record(ctx, movRepo, productRepo, product, entity.MovementIn,
		quantity, product.Stock+quantity, userID, reason, refID, refKind)
}

// ApplyOutInTx registra una salida dentro de una transacción ya abierta,
// validando stock suficiente con el valor leído dentro de la misma tx.
// Lo usan este caso de uso y el flujo de ventas.
func ApplyOutInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	productID int64, quantity int, userID int64,
	reason string, refID *int64, refKind string,
) (*entity.InventoryMovement, error) {
	product, err := mustGetProduct(ctx, productRepo, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}
	return record(ctx, movRepo, productRepo, product, entity.MovementOut,
		quantity, product.Stock-quantity, userID, reason, refID, refKind)
}

func record(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product, kind string,
	quantity, newStock int, userID int64,
	reason string, refID *int64, refKind string,
) (*entity.InventoryMovement, error) {
	m := &entity.InventoryMovement{
		ProductID:   product.ID,
		Kind:        kind,
		Quantity:    quantity,
		StockBefore: product.Stock,
		StockAfter:  newStock,
		Reason:      reason,
		RefID:       refID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	if refKind != "" {
		m.RefKind = &refKind
	}
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	var err error
	if m.ID, err = movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func mustGetProduct(ctx context.Context, productRepo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	if !product.Active {
		return nil, domain.NewValidationError("el producto %s está inactivo", product.Name)
	}
	return product, nil
}
