package repository

import (
	"context"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// InventoryMovementRepository puerto del registro de movimientos de inventario.
// La tabla es append-only: no hay update ni delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) (int64, error)
	ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.InventoryMovement, error)
	ListByDate(ctx context.Context, from, to time.Time) ([]*entity.InventoryMovement, error)
}
