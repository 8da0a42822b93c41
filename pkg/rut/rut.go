// Package rut valida y formatea el RUT chileno (Rol Único Tributario).
// El dígito verificador se calcula con el algoritmo módulo 11 del SII:
// los dígitos del cuerpo se ponderan de derecha a izquierda con la serie
// cíclica 2,3,4,5,6,7 y el resto módulo 11 determina el dígito (0–9 o 'K').
package rut

import (
	"strings"
)

// Normalize elimina puntos y guión y pasa el dígito verificador a mayúscula.
// "12.345.678-5" → "123456785".
func Normalize(rut string) string {
	r := strings.ToUpper(strings.TrimSpace(rut))
	r = strings.ReplaceAll(r, ".", "")
	r = strings.ReplaceAll(r, "-", "")
	return r
}

// ComputeDV calcula el dígito verificador para un cuerpo numérico.
// Devuelve 0 y false si el cuerpo está vacío o contiene caracteres no numéricos.
func ComputeDV(body string) (byte, bool) {
	if body == "" {
		return 0, false
	}
	sum := 0
	weight := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		sum += int(c-'0') * weight
		if weight < 7 {
			weight++
		} else {
			weight = 2
		}
	}
	switch rest := sum % 11; rest {
	case 0:
		return '0', true
	case 1:
		return 'K', true
	default:
		return byte('0' + (11 - rest)), true
	}
}

// Validate verifica que el RUT (con o sin puntos y guión) tenga un dígito
// verificador correcto.
func Validate(r string) bool {
	n := Normalize(r)
	if len(n) < 2 {
		return false
	}
	body, dv := n[:len(n)-1], n[len(n)-1]
	expected, ok := ComputeDV(body)
	return ok && dv == expected
}

// Format devuelve el RUT con puntos de miles y guión: "123456785" → "12.345.678-5".
// Si la entrada no parece un RUT, se devuelve tal cual.
func Format(r string) string {
	n := Normalize(r)
	if len(n) < 2 {
		return r
	}
	body, dv := n[:len(n)-1], n[len(n)-1:]
	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}
