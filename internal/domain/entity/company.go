package entity

import "time"

// Company representa el perfil de la empresa (fila única en empresas).
type Company struct {
	ID        int64     `db:"id"`
	Name      string    `db:"nombre"`
	RUT       string    `db:"rut"`
	Address   string    `db:"direccion"`
	Phone     string    `db:"telefono"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
