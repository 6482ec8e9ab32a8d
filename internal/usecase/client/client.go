package client

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	clientdomain "github.com/BruksfildServices01/massage-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type Input struct {
	Name  string
	Phone string
	Notes string
}

func (in Input) normalized() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Name == "" {
		return in, httperr.ErrBusiness(httperr.CodeBlankName)
	}
	return in, nil
}

// Clients groups the client catalog operations.
type Clients struct {
	repo   clientdomain.Repository
	events events.Publisher
}

func New(repo clientdomain.Repository, pub events.Publisher) *Clients {
	return &Clients{repo: repo, events: pub}
}

func (uc *Clients) Create(ctx context.Context, in Input) (*models.Client, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}

	c := &models.Client{Name: in.Name, Phone: in.Phone, Notes: in.Notes}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(events.ActionCreated, c.ID)
	return c, nil
}

// Update returns nil, nil when the client no longer exists.
func (uc *Clients) Update(ctx context.Context, id uint, in Input) (*models.Client, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Name, c.Phone, c.Notes = in.Name, in.Phone, in.Notes
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.publish(events.ActionUpdated, c.ID)
	return c, nil
}

// Delete refuses while any appointment references the client.
func (uc *Clients) Delete(ctx context.Context, id uint) error {
	n, err := uc.repo.CountAppointments(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return httperr.ErrBusiness(httperr.CodeClientInUse)
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

func (uc *Clients) Get(ctx context.Context, id uint) (*models.Client, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *Clients) List(ctx context.Context, search string) ([]models.Client, error) {
	return uc.repo.List(ctx, search)
}

func (uc *Clients) publish(action string, id uint) {
	uc.events.Publish(events.Event{Topic: events.TopicClients, Action: action, ID: id})
}
