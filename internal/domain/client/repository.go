package client

import (
	"context"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id uint) (*models.Client, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// List orders by name. A non-empty search filters by name or phone.
	List(ctx context.Context, search string) ([]models.Client, error)

	CountAppointments(ctx context.Context, clientID uint) (int64, error)
}
