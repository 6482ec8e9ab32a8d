// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/db"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

// NewDB opens a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.OpenWith(sqlite.Open(dsn), zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func MustClient(t testing.TB, gdb *gorm.DB, name, phone string) *models.Client {
	t.Helper()
	c := &models.Client{Name: name, Phone: phone}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func MustService(t testing.TB, gdb *gorm.DB, name string, minutes int, price string) *models.Service {
	t.Helper()
	s := &models.Service{
		Name:        name,
		DurationMin: minutes,
		Price:       decimal.RequireFromString(price),
		Active:      true,
	}
	require.NoError(t, gdb.Create(s).Error)
	return s
}

// MustAppointment inserts a row directly, bypassing the overlap rule.
func MustAppointment(
	t testing.TB,
	gdb *gorm.DB,
	client *models.Client,
	svc *models.Service,
	start time.Time,
	status string,
) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		ClientID:  client.ID,
		ServiceID: svc.ID,
		StartTime: start.UTC(),
		EndTime:   start.Add(svc.Duration()).UTC(),
		Status:    status,
	}
	require.NoError(t, gdb.Omit("Client", "Service").Create(ap).Error)
	return ap
}
