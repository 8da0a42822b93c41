// Package password implementa el hash de contraseñas en formato salt$digest:
// PBKDF2-SHA256 con salt aleatorio, codificado en hexadecimal. La verificación
// usa comparación en tiempo constante.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 120_000
)

// Hash genera el hash salt$digest de una contraseña.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generar salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest), nil
}

// Verify compara una contraseña contra un hash salt$digest en tiempo constante.
// Devuelve false ante cualquier hash malformado.
func Verify(password, encoded string) bool {
	salt64, digest64, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(salt64)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(digest64)
	if err != nil || len(stored) == 0 {
		return false
	}
	computed := pbkdf2.Key([]byte(password), salt, iterations, len(stored), sha256.New)
	return subtle.ConstantTimeCompare(computed, stored) == 1
}

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

// Generate produce una contraseña aleatoria de la longitud indicada.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = 8
	}
	var b strings.Builder
	max := big.NewInt(int64(len(randomChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar contraseña: %w", err)
		}
		b.WriteByte(randomChars[n.Int64()])
	}
	return b.String(), nil
}
