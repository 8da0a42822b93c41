package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetail es una línea de venta: producto, cantidad y precio unitario.
type SaleDetail struct {
	ID        int64           `db:"id"`
	SaleID    int64           `db:"venta_id"`
	ProductID int64           `db:"producto_id"`
	Quantity  int             `db:"cantidad"`
	UnitPrice decimal.Decimal `db:"precio_unitario"`
	LineTotal decimal.Decimal `db:"total_linea"`
}

// ComputeLineTotal recalcula el total de la línea (cantidad × precio unitario).
func (d *SaleDetail) ComputeLineTotal() {
	d.LineTotal = decimal.NewFromInt(int64(d.Quantity)).Mul(d.UnitPrice)
}

// Sale representa una venta (boleta) con sus líneas. Una venta confirmada
// nunca se modifica.
type Sale struct {
	ID           int64           `db:"id"`
	DocNumber    string          `db:"numero_boleta"` // único, formato B-YYYYMMDD-NNNN
	Date         time.Time       `db:"fecha"`
	CustomerName string          `db:"cliente_nombre"`
	CustomerRUT  string          `db:"cliente_rut"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	IVA          decimal.Decimal `db:"iva"`
	Total        decimal.Decimal `db:"total"`
	UserID       int64           `db:"usuario_id"`
	CreatedAt    time.Time       `db:"created_at"`
	Details      []SaleDetail    `db:"-"`
}

// ComputeTotals recalcula subtotal, IVA y total desde las líneas.
// Siempre se recalcula completo, nunca se acumula incrementalmente.
func (s *Sale) ComputeTotals(ivaRate decimal.Decimal) {
	subtotal := decimal.Zero
	for i := range s.Details {
		s.Details[i].ComputeLineTotal()
		subtotal = subtotal.Add(s.Details[i].LineTotal)
	}
	s.Subtotal = subtotal
	s.IVA = subtotal.Mul(ivaRate)
	s.Total = s.Subtotal.Add(s.IVA)
}
