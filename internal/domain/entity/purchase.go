package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseDetail es una línea de compra: producto, cantidad y precio unitario.
type PurchaseDetail struct {
	ID         int64           `db:"id"`
	PurchaseID int64           `db:"compra_id"`
	ProductID  int64           `db:"producto_id"`
	Quantity   int             `db:"cantidad"`
	UnitPrice  decimal.Decimal `db:"precio_unitario"`
	LineTotal  decimal.Decimal `db:"total_linea"`
}

// ComputeLineTotal recalcula el total de la línea (cantidad × precio unitario).
func (d *PurchaseDetail) ComputeLineTotal() {
	d.LineTotal = decimal.NewFromInt(int64(d.Quantity)).Mul(d.UnitPrice)
}

// Purchase representa una compra (factura de proveedor) con sus líneas.
// Una compra confirmada nunca se modifica.
type Purchase struct {
	ID         int64            `db:"id"`
	DocNumber  string           `db:"numero_factura"` // único, formato F-YYYYMMDD-NNNN
	Date       time.Time        `db:"fecha"`
	SupplierID int64            `db:"proveedor_id"`
	Subtotal   decimal.Decimal  `db:"subtotal"`
	IVA        decimal.Decimal  `db:"iva"`
	Total      decimal.Decimal  `db:"total"`
	UserID     int64            `db:"usuario_id"`
	CreatedAt  time.Time        `db:"created_at"`
	Details    []PurchaseDetail `db:"-"`
}

// ComputeTotals recalcula subtotal, IVA y total desde las líneas.
func (p *Purchase) ComputeTotals(ivaRate decimal.Decimal) {
	subtotal := decimal.Zero
	for i := range p.Details {
		p.Details[i].ComputeLineTotal()
		subtotal = subtotal.Add(p.Details[i].LineTotal)
	}
	p.Subtotal = subtotal
	p.IVA = subtotal.Mul(ivaRate)
	p.Total = p.Subtotal.Add(p.IVA)
}
