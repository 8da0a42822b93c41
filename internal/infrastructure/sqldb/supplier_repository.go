package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, nombre, rut, direccion, telefono, email,
	producto_principal, activo, created_at`

// SupplierRepo implementación del puerto SupplierRepository. Pasar pool o tx.
type SupplierRepo struct {
	q sqlx.ExtContext
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q sqlx.ExtContext) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor y devuelve el ID asignado.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	query := `
		INSERT INTO proveedores (nombre, rut, direccion, telefono, email,
			producto_principal, activo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		s.Name, s.RUT, s.Address, s.Phone, s.Email,
		s.MainProduct, s.Active, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe un proveedor con RUT %s", s.RUT)
		}
		return 0, fmt.Errorf("insert proveedor: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un proveedor por ID, o (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := sqlx.GetContext(ctx, r.q, &s,
		"SELECT "+supplierColumns+" FROM proveedores WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &s, nil
}

// GetByRUT obtiene un proveedor por RUT, o (nil, nil) si no existe.
func (r *SupplierRepo) GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := sqlx.GetContext(ctx, r.q, &s,
		"SELECT "+supplierColumns+" FROM proveedores WHERE rut = ?", rut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor por rut: %w", err)
	}
	return &s, nil
}

// List devuelve los proveedores ordenados por nombre. Por defecto solo activos.
func (r *SupplierRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error) {
	query := "SELECT " + supplierColumns + " FROM proveedores"
	if !includeInactive {
		query += " WHERE activo = 1"
	}
	query += " ORDER BY nombre"
	var out []*entity.Supplier
	if err := sqlx.SelectContext(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	return out, nil
}

// Search busca proveedores activos por subcadena en nombre, RUT o producto principal.
func (r *SupplierRepo) Search(ctx context.Context, text string) ([]*entity.Supplier, error) {
	pattern := "%" + text + "%"
	query := "SELECT " + supplierColumns + ` FROM proveedores
		WHERE activo = 1 AND (nombre LIKE ? OR rut LIKE ? OR producto_principal LIKE ?)
		ORDER BY nombre`
	var out []*entity.Supplier
	if err := sqlx.SelectContext(ctx, r.q, &out, query, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search proveedores: %w", err)
	}
	return out, nil
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE proveedores SET nombre = ?, rut = ?, direccion = ?, telefono = ?,
			email = ?, producto_principal = ?, activo = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		s.Name, s.RUT, s.Address, s.Phone,
		s.Email, s.MainProduct, s.Active, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("ya existe un proveedor con RUT %s", s.RUT)
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	return requireRow(res, "proveedor", s.ID)
}

// Deactivate marca el proveedor como inactivo (baja lógica).
func (r *SupplierRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE proveedores SET activo = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deactivate proveedor: %w", err)
	}
	return requireRow(res, "proveedor", id)
}
