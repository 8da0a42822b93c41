package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/pkg/password"
)

func TestHashVerify(t *testing.T) {
	h, err := password.Hash("secreto123")
	require.NoError(t, err)
	assert.Contains(t, h, "$", "el formato debe ser salt$digest")

	assert.True(t, password.Verify("secreto123", h))
	assert.False(t, password.Verify("otra", h))
}

func TestHash_SaltDistintoPorLlamada(t *testing.T) {
	h1, err := password.Hash("mismo")
	require.NoError(t, err)
	h2, err := password.Hash("mismo")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, password.Verify("mismo", h1))
	assert.True(t, password.Verify("mismo", h2))
}

func TestVerify_HashMalformado(t *testing.T) {
	assert.False(t, password.Verify("x", ""))
	assert.False(t, password.Verify("x", "sinseparador"))
	assert.False(t, password.Verify("x", "zz$zz"))
	assert.False(t, password.Verify("x", "abcd$"))
}

func TestGenerate(t *testing.T) {
	p, err := password.Generate(12)
	require.NoError(t, err)
	assert.Len(t, p, 12)

	// Longitud inválida cae al valor por defecto.
	p, err = password.Generate(0)
	require.NoError(t, err)
	assert.Len(t, p, 8)
	assert.False(t, strings.ContainsAny(p, " \t\n"))
}
