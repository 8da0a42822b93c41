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

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

const workerColumns = `id, rut, nombre, apellido, cargo, telefono, email,
	salario, fecha_contratacion, activo, created_at`

// WorkerRepo implementación del puerto WorkerRepository. Pasar pool o tx.
type WorkerRepo struct {
	q sqlx.ExtContext
}

// NewWorkerRepository construye el adaptador de persistencia para trabajadores.
func NewWorkerRepository(q sqlx.ExtContext) *WorkerRepo {
	return &WorkerRepo{q: q}
}

// Create persiste un nuevo trabajador y devuelve el ID asignado.
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) (int64, error) {
	query := `
		INSERT INTO trabajadores (rut, nombre, apellido, cargo, telefono, email,
			salario, fecha_contratacion, activo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		w.RUT, w.FirstName, w.LastName, w.Position, w.Phone, w.Email,
		w.Salary, w.HiredAt, w.Active, w.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe un trabajador con RUT %s", w.RUT)
		}
		return 0, fmt.Errorf("insert trabajador: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un trabajador por ID, o (nil, nil) si no existe.
func (r *WorkerRepo) GetByID(ctx context.Context, id int64) (*entity.Worker, error) {
	var w entity.Worker
	err := sqlx.GetContext(ctx, r.q, &w,
		"SELECT "+workerColumns+" FROM trabajadores WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trabajador: %w", err)
	}
	return &w, nil
}

// GetByRUT obtiene un trabajador por RUT, o (nil, nil) si no existe.
func (r *WorkerRepo) GetByRUT(ctx context.Context, rut string) (*entity.Worker, error) {
	var w entity.Worker
	err := sqlx.GetContext(ctx, r.q, &w,
		"SELECT "+workerColumns+" FROM trabajadores WHERE rut = ?", rut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trabajador por rut: %w", err)
	}
	return &w, nil
}

// List devuelve los trabajadores ordenados por apellido. Por defecto solo activos.
func (r *WorkerRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Worker, error) {
	query := "SELECT " + workerColumns + " FROM trabajadores"
	if !includeInactive {
		query += " WHERE activo = 1"
	}
	query += " ORDER BY apellido, nombre"
	var out []*entity.Worker
	if err := sqlx.SelectContext(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list trabajadores: %w", err)
	}
	return out, nil
}

// Search busca trabajadores activos por subcadena en nombre, apellido o RUT.
func (r *WorkerRepo) Search(ctx context.Context, text string) ([]*entity.Worker, error) {
	pattern := "%" + text + "%"
	query := "SELECT " + workerColumns + ` FROM trabajadores
		WHERE activo = 1 AND (nombre LIKE ? OR apellido LIKE ? OR rut LIKE ?)
		ORDER BY apellido, nombre`
	var out []*entity.Worker
	if err := sqlx.SelectContext(ctx, r.q, &out, query, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search trabajadores: %w", err)
	}
	return out, nil
}

// Update actualiza los datos del trabajador.
func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	query := `
		UPDATE trabajadores SET rut = ?, nombre = ?, apellido = ?, cargo = ?,
			telefono = ?, email = ?, salario = ?, fecha_contratacion = ?, activo = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		w.RUT, w.FirstName, w.LastName, w.Position,
		w.Phone, w.Email, w.Salary, w.HiredAt, w.Active, w.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("ya existe un trabajador con RUT %s", w.RUT)
		}
		return fmt.Errorf("update trabajador: %w", err)
	}
	return requireRow(res, "trabajador", w.ID)
}

// Deactivate marca el trabajador como inactivo (baja lógica).
func (r *WorkerRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE trabajadores SET activo = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deactivate trabajador: %w", err)
	}
	return requireRow(res, "trabajador", id)
}
