package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository. La tabla empresas
// guarda una sola fila: el perfil de la empresa.
type CompanyRepo struct {
	q sqlx.ExtContext
}

// NewCompanyRepository construye el adaptador de persistencia para el perfil de empresa.
func NewCompanyRepository(q sqlx.ExtContext) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devuelve el perfil de la empresa, o (nil, nil) si aún no se registró.
func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	var c entity.Company
	err := sqlx.GetContext(ctx, r.q, &c, `
		SELECT id, nombre, rut, direccion, telefono, email, created_at
		FROM empresas ORDER BY id LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &c, nil
}

// Create registra el perfil de la empresa y devuelve el ID asignado.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO empresas (nombre, rut, direccion, telefono, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.RUT, c.Address, c.Phone, c.Email, c.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert empresa: %w", err)
	}
	return res.LastInsertId()
}

// Update actualiza el perfil de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE empresas SET nombre = ?, rut = ?, direccion = ?, telefono = ?, email = ?
		WHERE id = ?`,
		c.Name, c.RUT, c.Address, c.Phone, c.Email, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return requireRow(res, "empresa", c.ID)
}
