package repository

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) cuando no existe la fila.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Product, error)
	Search(ctx context.Context, text string) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	// UpdateStock es de uso exclusivo del ledger de inventario.
	UpdateStock(ctx context.Context, id int64, newStock int) error
	Deactivate(ctx context.Context, id int64) error
}
