package repository

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios del sistema.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Deactivate(ctx context.Context, id int64) error
}
