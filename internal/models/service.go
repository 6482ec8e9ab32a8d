package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an entry of the treatment catalog.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active      bool            `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
