package repository

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// WorkerRepository puerto de persistencia para trabajadores.
type WorkerRepository interface {
	Create(ctx context.Context, w *entity.Worker) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Worker, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Worker, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Worker, error)
	// Search busca por subcadena en nombre y apellido (sin distinguir mayúsculas).
	Search(ctx context.Context, text string) ([]*entity.Worker, error)
	Update(ctx context.Context, w *entity.Worker) error
	Deactivate(ctx context.Context, id int64) error
}
