package models

import "time"

// SchemaVersion holds a single row with the applied migration version.
type SchemaVersion struct {
	ID        uint      `gorm:"primaryKey"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}
