package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas sobre ventas e inventario para el dashboard.
type ReportRepo struct {
	q sqlx.ExtContext
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q sqlx.ExtContext) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary agrega las ventas del rango [from, to).
func (r *ReportRepo) SalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	var row struct {
		Count    int64           `db:"total_ventas"`
		Subtotal decimal.Decimal `db:"total_subtotal"`
		IVA      decimal.Decimal `db:"total_iva"`
		Total    decimal.Decimal `db:"total_ingresos"`
	}
	err := sqlx.GetContext(ctx, r.q, &row, `
		SELECT COUNT(*)                AS total_ventas,
		       COALESCE(SUM(subtotal), 0) AS total_subtotal,
		       COALESCE(SUM(iva), 0)      AS total_iva,
		       COALESCE(SUM(total), 0)    AS total_ingresos
		FROM ventas WHERE fecha >= ? AND fecha < ?`, from, to)
	if err != nil {
		return nil, fmt.Errorf("resumen de ventas: %w", err)
	}
	out := &repository.SalesSummaryResult{
		Count:    row.Count,
		Subtotal: row.Subtotal,
		IVA:      row.IVA,
		Total:    row.Total,
	}
	if row.Count > 0 {
		out.AverageTicket = row.Total.Div(decimal.NewFromInt(row.Count)).Round(2)
	}
	return out, nil
}

// InventoryKPIs calcula los indicadores de inventario sobre productos activos.
func (r *ReportRepo) InventoryKPIs(ctx context.Context) (*repository.InventoryKPIResult, error) {
	var row struct {
		LowStock   int64           `db:"bajo_stock"`
		OverStock  int64           `db:"sobre_stock"`
		OutOfStock int64           `db:"sin_stock"`
		TotalValue decimal.Decimal `db:"valor_total"`
	}
	err := sqlx.GetContext(ctx, r.q, &row, `
		SELECT COALESCE(SUM(CASE WHEN stock_actual <= stock_minimo THEN 1 ELSE 0 END), 0) AS bajo_stock,
		       COALESCE(SUM(CASE WHEN stock_actual > stock_maximo THEN 1 ELSE 0 END), 0)  AS sobre_stock,
		       COALESCE(SUM(CASE WHEN stock_actual = 0 THEN 1 ELSE 0 END), 0)             AS sin_stock,
		       COALESCE(SUM(stock_actual * precio_compra), 0)                             AS valor_total
		FROM productos WHERE activo = 1`)
	if err != nil {
		return nil, fmt.Errorf("indicadores de inventario: %w", err)
	}
	return &repository.InventoryKPIResult{
		LowStock:   row.LowStock,
		OverStock:  row.OverStock,
		OutOfStock: row.OutOfStock,
		TotalValue: row.TotalValue,
	}, nil
}

// LowStockProducts lista los productos activos en o bajo su stock mínimo,
// los más críticos primero.
func (r *ReportRepo) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := sqlx.SelectContext(ctx, r.q, &out,
		"SELECT "+productColumns+` FROM productos
		WHERE activo = 1 AND stock_actual <= stock_minimo
		ORDER BY stock_actual - stock_minimo, nombre`)
	if err != nil {
		return nil, fmt.Errorf("productos bajo stock: %w", err)
	}
	return out, nil
}
