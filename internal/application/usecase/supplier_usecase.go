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
	"github.com/EzerZuniga/gestion-comercial/pkg/rut"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// CreateSupplierInput datos para registrar un proveedor.
type CreateSupplierInput struct {
	Name        string
	RUT         string
	Address     string
	Phone       string
	Email       string
	MainProduct string
}

// Create valida y registra un proveedor nuevo. Requiere rol administrador.
func (uc *SupplierUseCase) Create(ctx context.Context, s *session.AppSession, in CreateSupplierInput) (*entity.Supplier, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.RUT = strings.TrimSpace(in.RUT)
	if in.Name == "" || in.RUT == "" {
		return nil, domain.NewValidationError("nombre y RUT son obligatorios")
	}
	if !rut.Validate(in.RUT) {
		return nil, domain.NewValidationError("RUT inválido: %s", in.RUT)
	}
	if in.Email != "" && !validEmail(in.Email) {
		return nil, domain.NewValidationError("email inválido: %s", in.Email)
	}
	existing, err := uc.repo.GetByRUT(ctx, in.RUT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("ya existe un proveedor con RUT %s", in.RUT)
	}

	p := &entity.Supplier{
		Name:        in.Name,
		RUT:         in.RUT,
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		MainProduct: strings.TrimSpace(in.MainProduct),
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if p.ID, err = uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateSupplierInput campos modificables; nil deja el campo como está.
type UpdateSupplierInput struct {
	Name        *string
	RUT         *string
	Address     *string
	Phone       *string
	Email       *string
	MainProduct *string
}

func (in *UpdateSupplierInput) empty() bool {
	return in.Name == nil && in.RUT == nil && in.Address == nil &&
		in.Phone == nil && in.Email == nil && in.MainProduct == nil
}

// Update aplica una actualización parcial. Requiere rol administrador.
func (uc *SupplierUseCase) Update(ctx context.Context, s *session.AppSession, id int64, in UpdateSupplierInput) (*entity.Supplier, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, domain.NewValidationError("nada que actualizar")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}

	if in.RUT != nil {
		newRUT := strings.TrimSpace(*in.RUT)
		if !rut.Validate(newRUT) {
			return nil, domain.NewValidationError("RUT inválido: %s", newRUT)
		}
		if newRUT != p.RUT {
			existing, err := uc.repo.GetByRUT(ctx, newRUT)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.NewValidationError("ya existe un proveedor con RUT %s", newRUT)
			}
		}
		p.RUT = newRUT
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("el nombre no puede quedar vacío")
		}
		p.Name = name
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !validEmail(email) {
			return nil, domain.NewValidationError("email inválido: %s", email)
		}
		p.Email = email
	}
	if in.MainProduct != nil {
		p.MainProduct = strings.TrimSpace(*in.MainProduct)
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve el proveedor, o error si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.Supplier, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// List devuelve los proveedores; includeInactive solo está permitido a administradores.
func (uc *SupplierUseCase) List(ctx context.Context, s *session.AppSession, includeInactive bool) ([]*entity.Supplier, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	if includeInactive && !s.IsAdmin() {
		includeInactive = false
	}
	return uc.repo.List(ctx, includeInactive)
}

// Search busca proveedores activos por nombre, RUT o producto principal.
func (uc *SupplierUseCase) Search(ctx context.Context, s *session.AppSession, text string) ([]*entity.Supplier, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	return uc.repo.Search(ctx, strings.TrimSpace(text))
}

// Deactivate da de baja lógica el proveedor. Requiere rol administrador.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, s *session.AppSession, id int64) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}
