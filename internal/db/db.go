package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/massage-scheduler/internal/config"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite, "sqlite3", "":
		return sqlite.Open(sqliteDSN(dsn)), nil
	case DriverPostgres, "postgresql", "pg":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN enables WAL and a busy timeout for file databases.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") || strings.Contains(dsn, ":memory:") {
		return dsn
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000"
}

// Open connects to the configured database and brings the schema up to date.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		PrepareStmt: true,
		// Referential checks live in the application layer.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if db.Dialector.Name() == DriverSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log := logger.Component("db")
	if err := Migrate(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().
		Str("driver", db.Dialector.Name()).
		Int("schema_version", LatestVersion()).
		Msg("database ready")

	return db, nil
}

// OpenWith is used by tests and tools that already hold a dialector.
func OpenWith(dial gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
