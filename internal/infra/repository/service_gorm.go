package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

// Create stores s. gorm skips zero values for columns with a default, so an
// inactive service is written in a second step.
func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	active := s.Active
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		s.Active = false
		return tx.Model(s).Update("active", false).Error
	})
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceGormRepository) Get(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *ServiceGormRepository) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ServiceGormRepository) List(ctx context.Context, all bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{})

	if all {
		q = q.Order("active DESC").Order("name ASC")
	} else {
		q = q.Where("active = ?", true).Order("name ASC")
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceGormRepository) CountAppointments(ctx context.Context, serviceID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	return count, err
}

var _ catalog.Repository = (*ServiceGormRepository)(nil)
