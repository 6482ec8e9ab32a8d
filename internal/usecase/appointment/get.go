package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
)

type GetAppointment struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetAppointment(repo domain.Repository, loc *time.Location) *GetAppointment {
	return &GetAppointment{repo: repo, loc: loc}
}

// Execute returns domain.ErrNotFound for a missing id.
func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*dto.AppointmentView, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	v := dto.NewAppointmentView(ap, uc.loc)
	return &v, nil
}

// ListUpcoming returns pending appointments starting from now on.
type ListUpcoming struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewListUpcoming(repo domain.Repository, loc *time.Location) *ListUpcoming {
	return &ListUpcoming{repo: repo, loc: loc, now: time.Now}
}

func (uc *ListUpcoming) Execute(ctx context.Context, limit int) ([]dto.AppointmentView, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	apps, err := uc.repo.ListPendingFrom(ctx, uc.now(), limit)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentViews(apps, uc.loc), nil
}
