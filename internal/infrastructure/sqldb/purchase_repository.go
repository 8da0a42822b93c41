package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, numero_factura, fecha, proveedor_id,
	subtotal, iva, total, usuario_id, created_at`

// PurchaseRepo implementación del puerto PurchaseRepository. Pasar pool o tx;
// el flujo de compra lo usa siempre dentro de la transacción del TxRunner.
type PurchaseRepo struct {
	q sqlx.ExtContext
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q sqlx.ExtContext) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de la compra y devuelve el ID asignado.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) (int64, error) {
	query := `
		INSERT INTO compras (numero_factura, fecha, proveedor_id,
			subtotal, iva, total, usuario_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		p.DocNumber, p.Date, p.SupplierID,
		p.Subtotal, p.IVA, p.Total, p.UserID, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe una factura con número %s", p.DocNumber)
		}
		return 0, fmt.Errorf("insert compra: %w", err)
	}
	return res.LastInsertId()
}

// CreateDetail persiste una línea de compra y devuelve el ID asignado.
func (r *PurchaseRepo) CreateDetail(ctx context.Context, d *entity.PurchaseDetail) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO detalle_compras (compra_id, producto_id, cantidad, precio_unitario, total_linea)
		VALUES (?, ?, ?, ?, ?)`,
		d.PurchaseID, d.ProductID, d.Quantity, d.UnitPrice, d.LineTotal,
	)
	if err != nil {
		return 0, fmt.Errorf("insert detalle compra: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene la compra con sus líneas cargadas, o (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	var p entity.Purchase
	err := sqlx.GetContext(ctx, r.q, &p,
		"SELECT "+purchaseColumns+" FROM compras WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	err = sqlx.SelectContext(ctx, r.q, &p.Details, `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, total_linea
		FROM detalle_compras WHERE compra_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get detalle compra: %w", err)
	}
	return &p, nil
}

// ListByDate devuelve las cabeceras de compra del rango [from, to), más recientes primero.
func (r *PurchaseRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+purchaseColumns+" FROM compras WHERE fecha >= ? AND fecha < ? ORDER BY fecha DESC, id DESC",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	return out, nil
}

// CountByDay cuenta las compras del día al que pertenece day.
func (r *PurchaseRepo) CountByDay(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var n int
	err := sqlx.GetContext(ctx, r.q, &n,
		"SELECT COUNT(*) FROM compras WHERE fecha >= ? AND fecha < ?", start, end)
	if err != nil {
		return 0, fmt.Errorf("count compras del día: %w", err)
	}
	return n, nil
}
