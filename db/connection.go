package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var DB *sql.DB
var currentDriver string

type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// GetConfigFromEnv reads the audit database settings. An empty
// AUDIT_DB_DRIVER means auditing is disabled; the proxy itself is
// stateless and runs fine without a database.
func GetConfigFromEnv() Config {
	return Config{
		Driver:   os.Getenv("AUDIT_DB_DRIVER"),
		Host:     getEnvWithDefault("AUDIT_DB_HOST", "localhost"),
		Port:     getEnvWithDefault("AUDIT_DB_PORT", "5432"),
		User:     getEnvWithDefault("AUDIT_DB_USER", "postgres"),
		Password: getEnvWithDefault("AUDIT_DB_PASSWORD", "postgres"),
		Database: getEnvWithDefault("AUDIT_DB_NAME", "vonage_proxy"),
		SSLMode:  getEnvWithDefault("AUDIT_DB_SSLMODE", "disable"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func Connect() error {
	config := GetConfigFromEnv()
	if config.Driver == "" {
		return nil
	}
	return ConnectWithConfig(config)
}

func ConnectWithConfig(config Config) error {
	var dsn string
	var err error

	if config.Driver == "sqlite" {
		dsn = config.Database
		if dsn == "" {
			dsn = ":memory:"
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.Password, config.Database, config.SSLMode,
		)
	}

	DB, err = sql.Open(config.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)

	currentDriver = config.Driver

	return nil
}

func Close() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		currentDriver = ""
		return err
	}
	return nil
}

func GetDB() *sql.DB {
	return DB
}

// Enabled reports whether an audit database is connected.
func Enabled() bool {
	return DB != nil
}

func IsSQLite() bool {
	return currentDriver == "sqlite"
}
