package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

// AppointmentView is the read projection shown on the agenda. Service fields
// are optional because the service row may be gone.
type AppointmentView struct {
	ID           uint             `json:"id"`
	ClientID     uint             `json:"client_id"`
	ClientName   string           `json:"client_name"`
	ClientPhone  string           `json:"client_phone,omitempty"`
	ServiceID    uint             `json:"service_id"`
	ServiceName  *string          `json:"service_name"`
	ServicePrice *decimal.Decimal `json:"service_price"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      time.Time        `json:"end_time"`
	Status       string           `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	ReminderMin  *int             `json:"reminder_min"`
}

// NewAppointmentView expects Client and Service preloaded; a zero Service ID
// means the service row is missing.
func NewAppointmentView(ap *models.Appointment, loc *time.Location) AppointmentView {
	v := AppointmentView{
		ID:          ap.ID,
		ClientID:    ap.ClientID,
		ClientName:  ap.Client.Name,
		ClientPhone: ap.Client.Phone,
		ServiceID:   ap.ServiceID,
		StartTime:   ap.StartTime.In(loc),
		EndTime:     ap.EndTime.In(loc),
		Status:      ap.Status,
		Notes:       ap.Notes,
		ReminderMin: ap.ReminderMin,
	}
	if ap.Service.ID != 0 {
		name := ap.Service.Name
		price := ap.Service.Price
		v.ServiceName = &name
		v.ServicePrice = &price
	}
	return v
}

func NewAppointmentViews(apps []models.Appointment, loc *time.Location) []AppointmentView {
	out := make([]AppointmentView, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointmentView(&apps[i], loc))
	}
	return out
}

// DayCount is the number of appointments on a local calendar day.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
