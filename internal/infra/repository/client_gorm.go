package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Update(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientGormRepository) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ClientGormRepository) List(ctx context.Context, search string) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{})

	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) CountAppointments(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

var _ domain.Repository = (*ClientGormRepository)(nil)
