package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

// CountOverlaps counts non-canceled appointments whose interval intersects
// [start, end). excludeID skips the appointment being edited; zero skips
// nothing.
func (r *AppointmentGormRepository) CountOverlaps(
	ctx context.Context,
	start time.Time,
	end time.Time,
	excludeID uint,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status <> ? AND start_time < ? AND end_time > ?",
			string(domain.StatusCanceled),
			end.UTC(),
			start.UTC(),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	count, err := r.CountOverlaps(ctx, start, end, excludeID)
	if err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	return nil
}

// --------------------------------------------------
// Appointment (edit / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
	status domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("start_time >= ? AND start_time < ?", start.UTC(), end.UTC())

	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListPendingFrom(
	ctx context.Context,
	from time.Time,
	limit int,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("status = ? AND start_time >= ?", string(domain.StatusPending), from.UTC()).
		Order("start_time ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
