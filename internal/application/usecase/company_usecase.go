package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/rut"
)

// CompanyUseCase perfil de la empresa (fila única).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve el perfil de la empresa, o (nil, nil) si no está registrado.
func (uc *CompanyUseCase) Get(ctx context.Context, s *session.AppSession) (*entity.Company, error) {
	if err := requireConsulta(s); err != nil {
		return nil, err
	}
	return uc.repo.Get(ctx)
}

// CompanyInput datos del perfil de empresa.
type CompanyInput struct {
	Name    string
	RUT     string
	Address string
	Phone   string
	Email   string
}

// Save crea el perfil si no existe o lo actualiza si ya está registrado.
// Requiere rol administrador.
func (uc *CompanyUseCase) Save(ctx context.Context, s *session.AppSession, in CompanyInput) (*entity.Company, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewValidationError("el nombre de la empresa es obligatorio")
	}
	in.RUT = strings.TrimSpace(in.RUT)
	if in.RUT != "" && !rut.Validate(in.RUT) {
		return nil, domain.NewValidationError("RUT inválido: %s", in.RUT)
	}
	if in.Email != "" && !validEmail(in.Email) {
		return nil, domain.NewValidationError("email inválido: %s", in.Email)
	}

	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		c := &entity.Company{
			Name:      in.Name,
			RUT:       in.RUT,
			Address:   strings.TrimSpace(in.Address),
			Phone:     strings.TrimSpace(in.Phone),
			Email:     strings.TrimSpace(in.Email),
			CreatedAt: time.Now(),
		}
		if c.ID, err = uc.repo.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	current.Name = in.Name
	current.RUT = in.RUT
	current.Address = strings.TrimSpace(in.Address)
	current.Phone = strings.TrimSpace(in.Phone)
	current.Email = strings.TrimSpace(in.Email)
	if err := uc.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
