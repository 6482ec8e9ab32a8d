package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

var ErrNotFound = domain.ErrNotFound

type Repository interface {
	// -------- Catalog lookups --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	CountOverlaps(
		ctx context.Context,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (int64, error)

	AssertNoTimeConflict(
		ctx context.Context,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (edit / state change) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) (bool, error)

	// -------- Listings --------
	// ListAppointmentsForPeriod returns appointments starting in [start, end)
	// with client and service preloaded. An empty status means any status.
	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
		status Status,
	) ([]models.Appointment, error)

	ListPendingFrom(
		ctx context.Context,
		from time.Time,
		limit int,
	) ([]models.Appointment, error)
}
