package repository

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error)
	Search(ctx context.Context, text string) ([]*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Deactivate(ctx context.Context, id int64) error
}
