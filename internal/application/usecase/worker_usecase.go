package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/rut"
)

// WorkerUseCase casos de uso CRUD para trabajadores.
type WorkerUseCase struct {
	repo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo}
}

// CreateWorkerInput datos para registrar un trabajador.
type CreateWorkerInput struct {
	RUT       string
	FirstName string
	LastName  string
	Position  string
	Phone     string
	Email     string
	Salary    decimal.Decimal
	HiredAt   *time.Time
}

// Create valida y registra un trabajador nuevo. Requiere rol administrador.
func (uc *WorkerUseCase) Create(ctx context.Context, s *session.AppSession, in CreateWorkerInput) (*entity.Worker, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	in.RUT = strings.TrimSpace(in.RUT)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.RUT == "" || in.FirstName == "" || in.LastName == "" {
		return nil, domain.NewValidationError("RUT, nombre y apellido son obligatorios")
	}
	if !rut.Validate(in.RUT) {
		return nil, domain.NewValidationError("RUT inválido: %s", in.RUT)
	}
	if in.Email != "" && !validEmail(in.Email) {
		return nil, domain.NewValidationError("email inválido: %s", in.Email)
	}
	if in.Salary.IsNegative() {
		return nil, domain.NewValidationError("el salario no puede ser negativo")
	}
	existing, err := uc.repo.GetByRUT(ctx, in.RUT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("ya existe un trabajador con RUT %s", in.RUT)
	}

	w := &entity.Worker{
		RUT:       in.RUT,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  strings.TrimSpace(in.Position),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Salary:    in.Salary,
		HiredAt:   in.HiredAt,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if w.ID, err = uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateWorkerInput campos modificables; nil deja el campo como está.
type UpdateWorkerInput struct {
	RUT       *string
	FirstName *string
	LastName  *string
	Position  *string
	Phone     *string
	Email     *string
	Salary    *decimal.Decimal
	HiredAt   *time.Time
}

func (in *UpdateWorkerInput) empty() bool {
	return in.RUT == nil && in.FirstName == nil && in.LastName == nil &&
		in.Position == nil && in.Phone == nil && in.Email == nil &&
		in.Salary == nil && in.HiredAt == nil
}

// Update aplica una actualización parcial. Requiere rol administrador.
func (uc *WorkerUseCase) Update(ctx context.Context, s *session.AppSession, id int64, in UpdateWorkerInput) (*entity.Worker, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, domain.NewValidationError("nada que actualizar")
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("trabajador %d: %w", id, domain.ErrNotFound)
	}

	if in.RUT != nil {
		newRUT := strings.TrimSpace(*in.RUT)
		if !rut.Validate(newRUT) {
			return nil, domain.NewValidationError("RUT inválido: %s", newRUT)
		}
		if newRUT != w.RUT {
			existing, err := uc.repo.GetByRUT(ctx, newRUT)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.NewValidationError("ya existe un trabajador con RUT %s", newRUT)
			}
		}
		w.RUT = newRUT
	}
	if in.FirstName != nil {
		name := strings.TrimSpace(*in.FirstName)
		if name == "" {
			return nil, domain.NewValidationError("el nombre no puede quedar vacío")
		}
		w.FirstName = name
	}
	if in.LastName != nil {
		last := strings.TrimSpace(*in.LastName)
		if last == "" {
			return nil, domain.NewValidationError("el apellido no puede quedar vacío")
		}
		w.LastName = last
	}
	if in.Position != nil {
		w.Position = strings.TrimSpace(*in.Position)
	}
	if in.Phone != nil {
		w.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !validEmail(email) {
			return nil, domain.NewValidationError("email inválido: %s", email)
		}
		w.Email = email
	}
	if in.Salary != nil {
		if in.Salary.IsNegative() {
			return nil, domain.NewValidationError("el salario no puede ser negativo")
		}
		w.Salary = *in.Salary
	}
	if in.HiredAt != nil {
		w.HiredAt = in.HiredAt
	}

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetByID devuelve el trabajador, o error si no existe.
func (uc *WorkerUseCase) GetByID(ctx context.Context, s *session.AppSession, id int64) (*entity.Worker, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("trabajador %d: %w", id, domain.ErrNotFound)
	}
	return w, nil
}

// List devuelve los trabajadores; includeInactive solo está permitido a administradores.
func (uc *WorkerUseCase) List(ctx context.Context, s *session.AppSession, includeInactive bool) ([]*entity.Worker, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	if includeInactive && !s.IsAdmin() {
		includeInactive = false
	}
	return uc.repo.List(ctx, includeInactive)
}

// Search busca trabajadores activos por nombre, apellido o RUT.
func (uc *WorkerUseCase) Search(ctx context.Context, s *session.AppSession, text string) ([]*entity.Worker, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	return uc.repo.Search(ctx, strings.TrimSpace(text))
}

// Deactivate da de baja lógica el trabajador. Requiere rol administrador.
func (uc *WorkerUseCase) Deactivate(ctx context.Context, s *session.AppSession, id int64) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}
