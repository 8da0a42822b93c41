package entity

import "time"

// Supplier representa un proveedor. Baja lógica vía Active, nunca se elimina la fila.
type Supplier struct {
	ID          int64     `db:"id"`
	Name        string    `db:"nombre"`
	RUT         string    `db:"rut"` // único
	Address     string    `db:"direccion"`
	Phone       string    `db:"telefono"`
	Email       string    `db:"email"`
	MainProduct string    `db:"producto_principal"`
	Active      bool      `db:"activo"`
	CreatedAt   time.Time `db:"created_at"`
}
