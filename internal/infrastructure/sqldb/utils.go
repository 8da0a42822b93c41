package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	sqlite "modernc.org/sqlite"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
)

// isUniqueViolation detecta colisiones de índice único en ambos backends.
// Los repositorios la usan como respaldo de las validaciones de duplicados
// que corren antes del INSERT.
func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		// SQLITE_CONSTRAINT y sus códigos extendidos (p. ej. UNIQUE = 2067).
		return sqErr.Code()&0xff == 19
	}
	return false
}

// requireRow traduce un UPDATE sin filas afectadas a ErrNotFound.
func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
