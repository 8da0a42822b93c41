package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementIn     = "entrada"
	MovementOut    = "salida"
	MovementAdjust = "ajuste"
)

// Tipos de referencia al documento que originó un movimiento.
const (
	RefSale     = "venta"
	RefPurchase = "compra"
)

// InventoryMovement es un registro de auditoría append-only: captura un cambio
// de stock con su causa. Invariante: StockAfter − StockBefore = ±Quantity
// según el tipo; Quantity siempre es la magnitud (> 0).
type InventoryMovement struct {
	ID          int64     `db:"id"`
	ProductID   int64     `db:"producto_id"`
	Kind        string    `db:"tipo"`
	Quantity    int       `db:"cantidad"`
	StockBefore int       `db:"cantidad_anterior"`
	StockAfter  int       `db:"cantidad_nueva"`
	Reason      string    `db:"motivo"`
	RefID       *int64    `db:"referencia_id"`
	RefKind     *string   `db:"referencia_tipo"`
	UserID      int64     `db:"usuario_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// Delta devuelve el cambio de stock con signo.
func (m *InventoryMovement) Delta() int { return m.StockAfter - m.StockBefore }
