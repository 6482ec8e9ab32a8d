package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

func createTable(model any) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		if tx.Migrator().HasTable(model) {
			return nil
		}
		return tx.Migrator().CreateTable(model)
	}
}

var migrations = []migration{
	{Version: 1, Name: "create_clients", Up: createTable(&models.Client{})},
	{Version: 2, Name: "create_services", Up: createTable(&models.Service{})},
	// indexes on start_time, client_id and service_id come from the model tags
	{Version: 3, Name: "create_appointments", Up: createTable(&models.Appointment{})},
	{Version: 4, Name: "create_audit_logs", Up: createTable(&models.AuditLog{})},
}

// managedTables lists every table the migrations own, in drop order.
var managedTables = []any{
	&models.AuditLog{},
	&models.Appointment{},
	&models.Service{},
	&models.Client{},
}

func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the stored schema version, or -1 when the version
// table is missing.
func CurrentVersion(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(&models.SchemaVersion{}) {
		return -1, nil
	}

	var sv models.SchemaVersion
	err := db.Order("id DESC").First(&sv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return sv.Version, nil
}

// Migrate applies pending migrations in order. A schema it does not recognise
// (a newer version, or tables created before versioning existed) is dropped
// and rebuilt; its data is not preserved.
func Migrate(db *gorm.DB, log zerolog.Logger) error {
	current, err := CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if current == -1 && hasManagedTables(db) || current > LatestVersion() {
		log.Warn().
			Int("found_version", current).
			Int("latest_version", LatestVersion()).
			Msg("unrecognised schema, recreating database")

		if err := dropAll(db); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		current = -1
	}

	if current == -1 {
		if err := db.Migrator().CreateTable(&models.SchemaVersion{}); err != nil {
			return fmt.Errorf("create schema_versions: %w", err)
		}
		current = 0
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return setVersion(tx, m.Version)
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
	}

	return nil
}

func setVersion(tx *gorm.DB, version int) error {
	if err := tx.Where("1 = 1").Delete(&models.SchemaVersion{}).Error; err != nil {
		return err
	}
	return tx.Create(&models.SchemaVersion{
		Version:   version,
		AppliedAt: time.Now().UTC(),
	}).Error
}

func hasManagedTables(db *gorm.DB) bool {
	for _, t := range managedTables {
		if db.Migrator().HasTable(t) {
			return true
		}
	}
	return false
}

func dropAll(db *gorm.DB) error {
	tables := append([]any{&models.SchemaVersion{}}, managedTables...)
	for _, t := range tables {
		if !db.Migrator().HasTable(t) {
			continue
		}
		if err := db.Migrator().DropTable(t); err != nil {
			return err
		}
	}
	return nil
}
