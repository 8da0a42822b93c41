// Package sqldb implementa la pasarela de persistencia sobre SQLite (archivo
// local, backend por defecto) o MySQL. Ambos backends quedan detrás de los
// mismos adaptadores; los repositorios aceptan sqlx.ExtContext, por lo que el
// mismo código corre sobre el pool o dentro de una transacción.
package sqldb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/EzerZuniga/gestion-comercial/pkg/config"
)

// Open abre la conexión según el backend configurado, crea la base si no
// existe y verifica conectividad con ping.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return openSQLite(ctx, cfg.SQLitePath)
	case config.BackendMySQL:
		return openMySQL(ctx, cfg.MySQL)
	default:
		return nil, fmt.Errorf("backend no soportado: %q", cfg.Backend)
	}
}

func openSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}
	dsn := "file:" + path + "?_time_format=sqlite" +
		"&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo proceso local escribe; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func openMySQL(ctx context.Context, cfg config.MySQLConfig) (*sqlx.DB, error) {
	base := mysql.NewConfig()
	base.Net = "tcp"
	base.Addr = cfg.Addr()
	base.User = cfg.User
	base.Passwd = cfg.Password
	base.ParseTime = true
	base.Params = map[string]string{"charset": "utf8mb4"}

	// Crear la base de datos si no existe, como hace el arranque clásico.
	admin, err := sqlx.Open("mysql", base.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	_, err = admin.ExecContext(ctx, fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.DBName))
	admin.Close()
	if err != nil {
		return nil, fmt.Errorf("crear base de datos %s: %w", cfg.DBName, err)
	}

	base.DBName = cfg.DBName
	db, err := sqlx.Open("mysql", base.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
