package repository

import (
	"context"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) (int64, error)
	CreateDetail(ctx context.Context, d *entity.PurchaseDetail) (int64, error)
	// GetByID devuelve la compra con sus líneas cargadas, o (nil, nil).
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error)
	// CountByDay cuenta las compras del día al que pertenece day
	// (para la secuencia diaria del número de factura).
	CountByDay(ctx context.Context, day time.Time) (int, error)
}
