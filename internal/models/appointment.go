package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null;index:idx_appointments_client_id" json:"client_id"`
	Client   Client `json:"-"`

	ServiceID uint    `gorm:"not null;index:idx_appointments_service_id" json:"service_id"`
	Service   Service `json:"-"`

	StartTime time.Time `gorm:"not null;index:idx_appointments_start_time" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	// ReminderMin is the reminder lead in minutes; nil means no reminder.
	ReminderMin *int `json:"reminder_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReminderLead reports the lead time and whether a reminder is wanted.
func (a *Appointment) ReminderLead() (time.Duration, bool) {
	if a.ReminderMin == nil {
		return 0, false
	}
	return time.Duration(*a.ReminderMin) * time.Minute, true
}
