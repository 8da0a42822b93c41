// Package usecase agrupa los casos de uso CRUD del catálogo: productos,
// proveedores, trabajadores, usuarios y perfil de empresa. El stock de
// productos nunca se modifica aquí, solo vía el ledger de inventario.
package usecase

import (
	"regexp"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool { return emailRe.MatchString(s) }

// requireAdmin rechaza mutaciones de catálogo de sesiones sin rol administrador.
func requireAdmin(s *session.AppSession) error {
	if !s.IsAdmin() {
		return domain.NewAuthorizationError("solo un administrador puede modificar el catálogo")
	}
	return nil
}

// requireConsulta rechaza lecturas de sesiones sin permiso de consulta.
func requireConsulta(s *session.AppSession) error {
	if !s.Can(session.ActionConsulta) {
		return domain.NewAuthorizationError("sin permiso de consulta")
	}
	return nil
}
