package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, producto_id, tipo, cantidad, cantidad_anterior,
	cantidad_nueva, motivo, referencia_id, referencia_tipo, usuario_id, created_at`

// MovementRepo implementación del puerto InventoryMovementRepository.
// La tabla es append-only; solo hay inserciones y lecturas.
type MovementRepo struct {
	q sqlx.ExtContext
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q sqlx.ExtContext) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario y devuelve el ID asignado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) (int64, error) {
	query := `
		INSERT INTO inventario_movimientos (producto_id, tipo, cantidad, cantidad_anterior,
			cantidad_nueva, motivo, referencia_id, referencia_tipo, usuario_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		m.ProductID, m.Kind, m.Quantity, m.StockBefore,
		m.StockAfter, m.Reason, m.RefID, m.RefKind, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert movimiento: %w", err)
	}
	return res.LastInsertId()
}

// ListByProduct devuelve los últimos movimientos del producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*entity.InventoryMovement
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+movementColumns+" FROM inventario_movimientos WHERE producto_id = ? ORDER BY id DESC LIMIT ?",
		productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por producto: %w", err)
	}
	return out, nil
}

// ListByDate devuelve los movimientos del rango [from, to) en orden cronológico.
func (r *MovementRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+movementColumns+" FROM inventario_movimientos WHERE created_at >= ? AND created_at < ? ORDER BY id",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por fecha: %w", err)
	}
	return out, nil
}
