package repository

import (
	"context"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesSummaryResult agrega las ventas de un período.
type SalesSummaryResult struct {
	Count         int64           `db:"total_ventas"`
	Subtotal      decimal.Decimal `db:"total_subtotal"`
	IVA           decimal.Decimal `db:"total_iva"`
	Total         decimal.Decimal `db:"total_ingresos"`
	AverageTicket decimal.Decimal `db:"promedio_venta"`
}

// InventoryKPIResult agrupa los indicadores de inventario sobre productos activos.
type InventoryKPIResult struct {
	LowStock   int64           // stock_actual <= stock_minimo
	OverStock  int64           // stock_actual > stock_maximo
	OutOfStock int64           // stock_actual = 0
	TotalValue decimal.Decimal // Σ stock_actual × precio_compra
}

// ReportRepository consultas agregadas para reportes y dashboard.
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	InventoryKPIs(ctx context.Context) (*InventoryKPIResult, error)
	// LowStockProducts lista los productos activos en o bajo su stock mínimo.
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)
}
