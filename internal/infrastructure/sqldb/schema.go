package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// dialect abstrae las pocas diferencias de DDL entre SQLite y MySQL. El DML
// de los repositorios es idéntico en ambos backends (placeholders `?`,
// LastInsertId).
type dialect struct {
	name string
}

func dialectFor(db *sqlx.DB) dialect {
	return dialect{name: db.DriverName()}
}

func (d dialect) pk() string {
	if d.name == "mysql" {
		return "BIGINT PRIMARY KEY AUTO_INCREMENT"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d dialect) str(n int) string {
	if d.name == "mysql" {
		return fmt.Sprintf("VARCHAR(%d)", n)
	}
	return "TEXT"
}

func (d dialect) money() string {
	if d.name == "mysql" {
		return "DECIMAL(14,2)"
	}
	return "NUMERIC"
}

// EnsureSchema crea las tablas si no existen. Es idempotente; se ejecuta en
// cada arranque antes de servir operaciones.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	d := dialectFor(db)
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS empresas (
			id %s,
			nombre %s NOT NULL,
			rut %s NOT NULL DEFAULT '',
			direccion %s NOT NULL DEFAULT '',
			telefono %s NOT NULL DEFAULT '',
			email %s NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`, d.pk(), d.str(200), d.str(20), d.str(300), d.str(30), d.str(200)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS usuarios (
			id %s,
			username %s NOT NULL,
			password_hash %s NOT NULL,
			nombre %s NOT NULL DEFAULT '',
			email %s NOT NULL DEFAULT '',
			rol %s NOT NULL,
			activo BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (username)
		)`, d.pk(), d.str(50), d.str(200), d.str(200), d.str(200), d.str(20)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS trabajadores (
			id %s,
			rut %s NOT NULL,
			nombre %s NOT NULL,
			apellido %s NOT NULL,
			cargo %s NOT NULL DEFAULT '',
			telefono %s NOT NULL DEFAULT '',
			email %s NOT NULL DEFAULT '',
			salario %s NOT NULL DEFAULT 0,
			fecha_contratacion TIMESTAMP NULL,
			activo BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (rut)
		)`, d.pk(), d.str(20), d.str(100), d.str(100), d.str(100), d.str(30), d.str(200), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS proveedores (
			id %s,
			nombre %s NOT NULL,
			rut %s NOT NULL,
			direccion %s NOT NULL DEFAULT '',
			telefono %s NOT NULL DEFAULT '',
			email %s NOT NULL DEFAULT '',
			producto_principal %s NOT NULL DEFAULT '',
			activo BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (rut)
		)`, d.pk(), d.str(200), d.str(20), d.str(300), d.str(30), d.str(200), d.str(200)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS productos (
			id %s,
			codigo %s NOT NULL,
			nombre %s NOT NULL,
			descripcion %s NOT NULL DEFAULT '',
			categoria %s NOT NULL DEFAULT '',
			precio_compra %s NOT NULL DEFAULT 0,
			precio_venta %s NOT NULL DEFAULT 0,
			stock_actual INTEGER NOT NULL DEFAULT 0,
			stock_minimo INTEGER NOT NULL DEFAULT 0,
			stock_maximo INTEGER NOT NULL DEFAULT 0,
			proveedor_id BIGINT NULL,
			activo BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (codigo),
			FOREIGN KEY (proveedor_id) REFERENCES proveedores (id)
		)`, d.pk(), d.str(50), d.str(200), d.str(500), d.str(100), d.money(), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ventas (
			id %s,
			numero_boleta %s NOT NULL,
			fecha TIMESTAMP NOT NULL,
			cliente_nombre %s NOT NULL DEFAULT '',
			cliente_rut %s NOT NULL DEFAULT '',
			subtotal %s NOT NULL,
			iva %s NOT NULL,
			total %s NOT NULL,
			usuario_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (numero_boleta),
			FOREIGN KEY (usuario_id) REFERENCES usuarios (id)
		)`, d.pk(), d.str(30), d.str(200), d.str(20), d.money(), d.money(), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS detalle_ventas (
			id %s,
			venta_id BIGINT NOT NULL,
			producto_id BIGINT NOT NULL,
			cantidad INTEGER NOT NULL,
			precio_unitario %s NOT NULL,
			total_linea %s NOT NULL,
			FOREIGN KEY (venta_id) REFERENCES ventas (id),
			FOREIGN KEY (producto_id) REFERENCES productos (id)
		)`, d.pk(), d.money(), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS compras (
			id %s,
			numero_factura %s NOT NULL,
			fecha TIMESTAMP NOT NULL,
			proveedor_id BIGINT NOT NULL,
			subtotal %s NOT NULL,
			iva %s NOT NULL,
			total %s NOT NULL,
			usuario_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			UNIQUE (numero_factura),
			FOREIGN KEY (proveedor_id) REFERENCES proveedores (id),
			FOREIGN KEY (usuario_id) REFERENCES usuarios (id)
		)`, d.pk(), d.str(30), d.money(), d.money(), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS detalle_compras (
			id %s,
			compra_id BIGINT NOT NULL,
			producto_id BIGINT NOT NULL,
			cantidad INTEGER NOT NULL,
			precio_unitario %s NOT NULL,
			total_linea %s NOT NULL,
			FOREIGN KEY (compra_id) REFERENCES compras (id),
			FOREIGN KEY (producto_id) REFERENCES productos (id)
		)`, d.pk(), d.money(), d.money()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS inventario_movimientos (
			id %s,
			producto_id BIGINT NOT NULL,
			tipo %s NOT NULL,
			cantidad INTEGER NOT NULL,
			cantidad_anterior INTEGER NOT NULL,
			cantidad_nueva INTEGER NOT NULL,
			motivo %s NOT NULL DEFAULT '',
			referencia_id BIGINT NULL,
			referencia_tipo %s NULL,
			usuario_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (producto_id) REFERENCES productos (id),
			FOREIGN KEY (usuario_id) REFERENCES usuarios (id)
		)`, d.pk(), d.str(20), d.str(300), d.str(20)),
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
