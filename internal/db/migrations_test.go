package db_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/massage-scheduler/internal/db"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

func rawDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func countClients(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&models.Client{}).Count(&n).Error)
	return n
}

func TestMigrateFreshDatabase(t *testing.T) {
	gdb := rawDB(t)

	v, err := db.CurrentVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))

	v, err = db.CurrentVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, db.LatestVersion(), v)

	for _, m := range []any{&models.Client{}, &models.Service{}, &models.Appointment{}, &models.AuditLog{}} {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
	assert.True(t, gdb.Migrator().HasIndex(&models.Appointment{}, "idx_appointments_start_time"))
}

func TestMigrateKeepsDataWhenCurrent(t *testing.T) {
	gdb := rawDB(t)
	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))
	require.NoError(t, gdb.Create(&models.Client{Name: "Ana"}).Error)

	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))
	assert.Equal(t, int64(1), countClients(t, gdb))
}

func TestMigrateRecreatesUnversionedSchema(t *testing.T) {
	gdb := rawDB(t)
	require.NoError(t, gdb.AutoMigrate(&models.Client{}))
	require.NoError(t, gdb.Create(&models.Client{Name: "Legacy"}).Error)

	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))

	assert.Equal(t, int64(0), countClients(t, gdb))
	v, err := db.CurrentVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, db.LatestVersion(), v)
}

func TestMigrateRecreatesNewerSchema(t *testing.T) {
	gdb := rawDB(t)
	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))
	require.NoError(t, gdb.Create(&models.Client{Name: "Ana"}).Error)
	require.NoError(t, gdb.Model(&models.SchemaVersion{}).
		Where("1 = 1").
		Update("version", db.LatestVersion()+1).Error)

	require.NoError(t, db.Migrate(gdb, zerolog.Nop()))

	assert.Equal(t, int64(0), countClients(t, gdb))
	v, err := db.CurrentVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, db.LatestVersion(), v)
}
