package repository

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// CompanyRepository puerto para el perfil de empresa (fila única).
type CompanyRepository interface {
	// Get devuelve el perfil de la empresa, o (nil, nil) si aún no existe.
	Get(ctx context.Context) (*entity.Company, error)
	Create(ctx context.Context, c *entity.Company) (int64, error)
	Update(ctx context.Context, c *entity.Company) error
}
