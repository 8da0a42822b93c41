package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Worker representa un trabajador de la empresa.
type Worker struct {
	ID        int64           `db:"id"`
	RUT       string          `db:"rut"` // único
	FirstName string          `db:"nombre"`
	LastName  string          `db:"apellido"`
	Position  string          `db:"cargo"`
	Phone     string          `db:"telefono"`
	Email     string          `db:"email"`
	Salary    decimal.Decimal `db:"salario"`
	HiredAt   *time.Time      `db:"fecha_contratacion"`
	Active    bool            `db:"activo"`
	CreatedAt time.Time       `db:"created_at"`
}

// FullName devuelve nombre y apellido.
func (w *Worker) FullName() string {
	return strings.TrimSpace(w.FirstName + " " + w.LastName)
}
