package entity

import "time"

// Roles de usuario. El rol controla el acceso a pantallas administrativas
// y a las mutaciones de catálogo.
const (
	RoleAdmin      = "admin"
	RoleTrabajador = "trabajador"
)

// User representa un usuario del sistema. PasswordHash es opaco para el resto
// de la aplicación (formato salt$digest, ver pkg/password).
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"` // único
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"nombre"`
	Email        string    `db:"email"`
	Role         string    `db:"rol"`
	Active       bool      `db:"activo"`
	CreatedAt    time.Time `db:"created_at"`
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
