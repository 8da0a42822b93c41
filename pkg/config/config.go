package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo .env).
type Config struct {
	App   AppConfig
	DB    DBConfig
	Tax   TaxConfig
	Paths PathsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// Backends de base de datos soportados.
const (
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// DBConfig selector de backend y parámetros de conexión.
// SQLite es el backend por defecto; MySQL se activa con APP_DB_TYPE=mysql.
type DBConfig struct {
	Backend    string
	SQLitePath string // ruta del archivo .db
	MySQL      MySQLConfig
}

// MySQLConfig parámetros del backend MySQL.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Addr devuelve host:puerto del servidor MySQL.
func (c MySQLConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TaxConfig parámetros tributarios.
type TaxConfig struct {
	IVARate decimal.Decimal // IVA Chile: 0.19
}

// PathsConfig rutas base de datos, logs y respaldos.
type PathsConfig struct {
	Data    string
	Logs    string
	Backups string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// un archivo .env en el directorio actual). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	dataPath := getString(v, "APP_DATA_PATH", "data")
	ivaRaw := getString(v, "APP_IVA_RATE", "0.19")
	ivaRate, err := decimal.NewFromString(ivaRaw)
	if err != nil {
		return nil, fmt.Errorf("APP_IVA_RATE inválido %q: %w", ivaRaw, err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "gestion-comercial"),
		},
		DB: DBConfig{
			Backend:    strings.ToLower(getString(v, "APP_DB_TYPE", BackendSQLite)),
			SQLitePath: getString(v, "APP_DB_PATH", filepath.Join(dataPath, "bodega.db")),
			MySQL: MySQLConfig{
				Host:     getString(v, "APP_DB_HOST", "localhost"),
				Port:     getInt(v, "APP_DB_PORT", 3306),
				User:     getString(v, "APP_DB_USER", "root"),
				Password: getString(v, "APP_DB_PASSWORD", ""),
				DBName:   getString(v, "APP_DB_NAME", "gestion_comercial"),
			},
		},
		Tax: TaxConfig{IVARate: ivaRate},
		Paths: PathsConfig{
			Data:    dataPath,
			Logs:    getString(v, "APP_LOGS_PATH", filepath.Join(dataPath, "logs")),
			Backups: getString(v, "APP_BACKUPS_PATH", filepath.Join(dataPath, "backups")),
		},
	}

	if cfg.DB.Backend != BackendSQLite && cfg.DB.Backend != BackendMySQL {
		return nil, fmt.Errorf("APP_DB_TYPE no soportado: %q", cfg.DB.Backend)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
