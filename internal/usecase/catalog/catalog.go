package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	catalogdomain "github.com/BruksfildServices01/massage-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type Input struct {
	Name        string
	DurationMin int
	Price       decimal.Decimal
	Active      *bool
}

// Services groups the treatment catalog operations.
type Services struct {
	repo   catalogdomain.Repository
	events events.Publisher
}

func New(repo catalogdomain.Repository, pub events.Publisher) *Services {
	return &Services{repo: repo, events: pub}
}

func (uc *Services) Create(ctx context.Context, in Input) (*models.Service, error) {
	if err := catalogdomain.Validate(in.Name, in.DurationMin, in.Price); err != nil {
		return nil, err
	}

	s := &models.Service{
		Name:        strings.TrimSpace(in.Name),
		DurationMin: in.DurationMin,
		Price:       in.Price.Round(2),
		Active:      in.Active == nil || *in.Active,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(events.ActionCreated, s.ID)
	return s, nil
}

// Update leaves existing appointments' end times untouched. A missing
// service is a no-op.
func (uc *Services) Update(ctx context.Context, id uint, in Input) (*models.Service, error) {
	if err := catalogdomain.Validate(in.Name, in.DurationMin, in.Price); err != nil {
		return nil, err
	}

	s, err := uc.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.Name = strings.TrimSpace(in.Name)
	s.DurationMin = in.DurationMin
	s.Price = in.Price.Round(2)
	if in.Active != nil {
		s.Active = *in.Active
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(events.ActionUpdated, s.ID)
	return s, nil
}

// SetActive hides or shows a service in pickers without touching history.
func (uc *Services) SetActive(ctx context.Context, id uint, active bool) error {
	ok, err := uc.repo.SetActive(ctx, id, active)
	if err != nil {
		return err
	}
	if ok {
		uc.publish(events.ActionUpdated, id)
	}
	return nil
}

// Delete refuses while any appointment references the service.
func (uc *Services) Delete(ctx context.Context, id uint) error {
	n, err := uc.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return httperr.ErrBusiness(httperr.CodeServiceInUse)
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		uc.publish(events.ActionDeleted, id)
	}
	return nil
}

func (uc *Services) Get(ctx context.Context, id uint) (*models.Service, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *Services) List(ctx context.Context, all bool) ([]models.Service, error) {
	return uc.repo.List(ctx, all)
}

func (uc *Services) publish(action string, id uint) {
	uc.events.Publish(events.Event{Topic: events.TopicServices, Action: action, ID: id})
}
