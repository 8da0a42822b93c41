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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, numero_boleta, fecha, cliente_nombre, cliente_rut,
	subtotal, iva, total, usuario_id, created_at`

// SaleRepo implementación del puerto SaleRepository. Pasar pool o tx; el flujo
// de venta lo usa siempre dentro de la transacción del TxRunner.
type SaleRepo struct {
	q sqlx.ExtContext
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q sqlx.ExtContext) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta y devuelve el ID asignado.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) (int64, error) {
	query := `
		INSERT INTO ventas (numero_boleta, fecha, cliente_nombre, cliente_rut,
			subtotal, iva, total, usuario_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		s.DocNumber, s.Date, s.CustomerName, s.CustomerRUT,
		s.Subtotal, s.IVA, s.Total, s.UserID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe una boleta con número %s", s.DocNumber)
		}
		return 0, fmt.Errorf("insert venta: %w", err)
	}
	return res.LastInsertId()
}

// CreateDetail persiste una línea de venta y devuelve el ID asignado.
func (r *SaleRepo) CreateDetail(ctx context.Context, d *entity.SaleDetail) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO detalle_ventas (venta_id, producto_id, cantidad, precio_unitario, total_linea)
		VALUES (?, ?, ?, ?, ?)`,
		d.SaleID, d.ProductID, d.Quantity, d.UnitPrice, d.LineTotal,
	)
	if err != nil {
		return 0, fmt.Errorf("insert detalle venta: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene la venta con sus líneas cargadas, o (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := sqlx.GetContext(ctx, r.q, &s,
		"SELECT "+saleColumns+" FROM ventas WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	err = sqlx.SelectContext(ctx, r.q, &s.Details, `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, total_linea
		FROM detalle_ventas WHERE venta_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get detalle venta: %w", err)
	}
	return &s, nil
}

// ListByDate devuelve las cabeceras de venta del rango [from, to), más recientes primero.
func (r *SaleRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+saleColumns+" FROM ventas WHERE fecha >= ? AND fecha < ? ORDER BY fecha DESC, id DESC",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	return out, nil
}

// CountByDay cuenta las ventas del día al que pertenece day.
func (r *SaleRepo) CountByDay(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var n int
	err := sqlx.GetContext(ctx, r.q, &n,
		"SELECT COUNT(*) FROM ventas WHERE fecha >= ? AND fecha < ?", start, end)
	if err != nil {
		return 0, fmt.Errorf("count ventas del día: %w", err)
	}
	return n, nil
}
