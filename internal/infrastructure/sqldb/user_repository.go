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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, password_hash, nombre, email, rol, activo, created_at`

// UserRepo implementación del puerto UserRepository. Pasar pool o tx.
type UserRepo struct {
	q sqlx.ExtContext
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q sqlx.ExtContext) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y devuelve el ID asignado.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	query := `
		INSERT INTO usuarios (username, password_hash, nombre, email, rol, activo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.Name, u.Email, u.Role, u.Active, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe un usuario con nombre %s", u.Username)
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un usuario por ID, o (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := sqlx.GetContext(ctx, r.q, &u,
		"SELECT "+userColumns+" FROM usuarios WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// GetByUsername obtiene un usuario por nombre de usuario, o (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := sqlx.GetContext(ctx, r.q, &u,
		"SELECT "+userColumns+" FROM usuarios WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por username: %w", err)
	}
	return &u, nil
}

// List devuelve los usuarios ordenados por username. Por defecto solo activos.
func (r *UserRepo) List(ctx context.Context, includeInactive bool) ([]*entity.User, error) {
	query := "SELECT " + userColumns + " FROM usuarios"
	if !includeInactive {
		query += " WHERE activo = 1"
	}
	query += " ORDER BY username"
	var out []*entity.User
	if err := sqlx.SelectContext(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return out, nil
}

// Update actualiza los datos del usuario. No toca el hash de contraseña;
// para eso está UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET username = ?, nombre = ?, email = ?, rol = ?, activo = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		u.Username, u.Name, u.Email, u.Role, u.Active, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("ya existe un usuario con nombre %s", u.Username)
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return requireRow(res, "usuario", u.ID)
}

// UpdatePassword reemplaza el hash de contraseña del usuario.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE usuarios SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireRow(res, "usuario", id)
}

// Deactivate marca el usuario como inactivo (baja lógica).
func (r *UserRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE usuarios SET activo = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deactivate usuario: %w", err)
	}
	return requireRow(res, "usuario", id)
}
