// Package auth implementa el inicio de sesión y la gestión de contraseñas.
package auth

import (
	"context"
	"strings"

	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
	"github.com/EzerZuniga/gestion-comercial/pkg/password"
)

// UseCase autentica usuarios contra el repositorio y entrega sesiones.
type UseCase struct {
	users repository.UserRepository
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, log *logger.Logger) *UseCase {
	return &UseCase{users: users, log: log}
}

// Login verifica credenciales y devuelve una sesión nueva. Credenciales
// inválidas y usuario inactivo producen el mismo error, sin revelar cuál
// de las dos condiciones falló.
func (uc *UseCase) Login(ctx context.Context, username, plain string) (*session.AppSession, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, domain.NewAuthenticationError("usuario y contraseña son obligatorios")
	}

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active || !password.Verify(plain, u.PasswordHash) {
		uc.log.Warn().Str("username", username).Msg("intento de inicio de sesión fallido")
		return nil, domain.NewAuthenticationError("usuario o contraseña incorrectos")
	}

	uc.log.Info().Str("username", username).Str("rol", u.Role).Msg("inicio de sesión")
	return session.New(u), nil
}

// ChangePassword cambia la contraseña del usuario de la sesión, previa
// verificación de la contraseña actual.
func (uc *UseCase) ChangePassword(ctx context.Context, s *session.AppSession, current, next string) error {
	if s == nil || s.User == nil {
		return domain.NewAuthenticationError("se requiere una sesión activa")
	}
	if len(next) < 6 {
		return domain.NewValidationError("la nueva contraseña debe tener al menos 6 caracteres")
	}
	if !password.Verify(current, s.User.PasswordHash) {
		return domain.NewAuthenticationError("la contraseña actual no es correcta")
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, s.User.ID, hash); err != nil {
		return err
	}
	s.User.PasswordHash = hash
	uc.log.Info().Str("username", s.User.Username).Msg("contraseña actualizada")
	return nil
}
