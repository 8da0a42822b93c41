package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo se modifica a través del ledger de inventario, nunca directo.
type Product struct {
	ID            int64           `db:"id"`
	Code          string          `db:"codigo"` // código único
	Name          string          `db:"nombre"`
	Description   string          `db:"descripcion"`
	Category      string          `db:"categoria"`
	PurchasePrice decimal.Decimal `db:"precio_compra"`
	SalePrice     decimal.Decimal `db:"precio_venta"`
	Stock         int             `db:"stock_actual"`
	StockMin      int             `db:"stock_minimo"`
	StockMax      int             `db:"stock_maximo"`
	SupplierID    *int64          `db:"proveedor_id"`
	Active        bool            `db:"activo"`
	CreatedAt     time.Time       `db:"created_at"`
}

// ProfitMargin devuelve el margen de ganancia en porcentaje sobre el precio de compra.
func (p *Product) ProfitMargin() decimal.Decimal {
	if !p.PurchasePrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.SalePrice.Sub(p.PurchasePrice).Div(p.PurchasePrice).Mul(hundred)
}

// NeedsRestock indica si el stock cayó al mínimo o por debajo.
func (p *Product) NeedsRestock() bool { return p.Stock <= p.StockMin }

// OverStock indica si el stock supera el máximo configurado.
func (p *Product) OverStock() bool { return p.Stock > p.StockMax }
