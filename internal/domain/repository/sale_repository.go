package repository

import (
	"context"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) (int64, error)
	CreateDetail(ctx context.Context, d *entity.SaleDetail) (int64, error)
	// GetByID devuelve la venta con sus líneas cargadas, o (nil, nil).
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
	// CountByDay cuenta las ventas del día al que pertenece day
	// (para la secuencia diaria del número de boleta).
	CountByDay(ctx context.Context, day time.Time) (int, error)
}
