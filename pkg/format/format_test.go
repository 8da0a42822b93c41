package format_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/EzerZuniga/gestion-comercial/pkg/format"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1.234.567", format.Currency(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$0", format.Currency(decimal.Zero))
	assert.Equal(t, "$595", format.Currency(decimal.NewFromInt(595)))
	assert.Equal(t, "-$1.000", format.Currency(decimal.NewFromInt(-1000)))
	// Los decimales se redondean: la boleta se muestra en pesos enteros.
	assert.Equal(t, "$100", format.Currency(decimal.NewFromFloat(99.6)))
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2024", format.Date(d))
	assert.Equal(t, "", format.Date(time.Time{}))
}
