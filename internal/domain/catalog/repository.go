package catalog

import (
	"context"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Get(ctx context.Context, id uint) (*models.Service, error)
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// List returns active services by name, or every service with the
	// active ones first when all is set.
	List(ctx context.Context, all bool) ([]models.Service, error)

	CountAppointments(ctx context.Context, serviceID uint) (int64, error)
}
