// Package session define la sesión de aplicación que se crea al iniciar
// sesión y se pasa explícitamente a los casos de uso. No hay estado global de
// autenticación: quien tiene el valor, tiene la sesión.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// Acciones sujetas a permiso por rol.
const (
	ActionVentas   = "ventas"
	ActionConsulta = "consulta"
)

// allow-list de acciones del rol trabajador; el resto es solo admin.
var workerActions = map[string]bool{
	ActionVentas:   true,
	ActionConsulta: true,
}

// AppSession identifica al usuario autenticado durante su sesión de trabajo.
type AppSession struct {
	ID        string
	User      *entity.User
	StartedAt time.Time
}

// New crea una sesión para el usuario autenticado.
func New(u *entity.User) *AppSession {
	return &AppSession{
		ID:        uuid.New().String(),
		User:      u,
		StartedAt: time.Now(),
	}
}

// IsAdmin indica si la sesión pertenece a un administrador.
func (s *AppSession) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.IsAdmin()
}

// Can indica si la sesión puede ejecutar la acción. Los administradores
// pueden todo; los trabajadores solo lo listado en workerActions.
func (s *AppSession) Can(action string) bool {
	if s == nil || s.User == nil {
		return false
	}
	if s.User.IsAdmin() {
		return true
	}
	return workerActions[action]
}

// UserID devuelve el ID del usuario de la sesión (0 si no hay usuario).
func (s *AppSession) UserID() int64 {
	if s == nil || s.User == nil {
		return 0
	}
	return s.User.ID
}
