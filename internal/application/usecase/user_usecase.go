package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/password"
)

// UserUseCase administración de usuarios del sistema. Todas las operaciones
// requieren rol administrador.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateUserInput datos para crear un usuario.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// Create valida y crea un usuario nuevo con la contraseña ya hasheada.
func (uc *UserUseCase) Create(ctx context.Context, s *session.AppSession, in CreateUserInput) (*entity.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, domain.NewValidationError("el nombre de usuario es obligatorio")
	}
	if len(in.Password) < 6 {
		return nil, domain.NewValidationError("la contraseña debe tener al menos 6 caracteres")
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleTrabajador {
		return nil, domain.NewValidationError("rol inválido: %s", in.Role)
	}
	if in.Email != "" && !validEmail(in.Email) {
		return nil, domain.NewValidationError("email inválido: %s", in.Email)
	}
	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("ya existe un usuario con nombre %s", in.Username)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Role:         in.Role,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if u.ID, err = uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserInput campos modificables; nil deja el campo como está.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

func (in *UpdateUserInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Role == nil
}

// Update aplica una actualización parcial sobre nombre, email o rol.
func (uc *UserUseCase) Update(ctx context.Context, s *session.AppSession, id int64, in UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, domain.NewValidationError("nada que actualizar")
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !validEmail(email) {
			return nil, domain.NewValidationError("email inválido: %s", email)
		}
		u.Email = email
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleTrabajador {
			return nil, domain.NewValidationError("rol inválido: %s", *in.Role)
		}
		u.Role = *in.Role
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword fija una contraseña nueva para el usuario indicado.
func (uc *UserUseCase) ResetPassword(ctx context.Context, s *session.AppSession, id int64, newPassword string) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return domain.NewValidationError("la contraseña debe tener al menos 6 caracteres")
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, hash)
}

// GetByID devuelve el usuario, o error si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

// List devuelve los usuarios del sistema.
func (uc *UserUseCase) List(ctx context.Context, s *session.AppSession, includeInactive bool) ([]*entity.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, includeInactive)
}

// Deactivate da de baja lógica el usuario. Un administrador no puede
// desactivarse a sí mismo.
func (uc *UserUseCase) Deactivate(ctx context.Context, s *session.AppSession, id int64) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	if id == s.UserID() {
		return domain.NewValidationError("no puede desactivar su propio usuario")
	}
	return uc.repo.Deactivate(ctx, id)
}
