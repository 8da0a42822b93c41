// Package format contiene ayudas de presentación para la capa de UI
// (moneda y fechas en formato chileno). No participa en la lógica de negocio.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency formatea un monto como peso chileno sin decimales: 1234567 → "$1.234.567".
func Currency(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// Date formatea una fecha como dd/mm/aaaa.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
