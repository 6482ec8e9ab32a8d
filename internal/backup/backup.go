// Package backup writes JSON snapshots of the agenda to S3 or a local folder.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/db"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

type Snapshot struct {
	SchemaVersion int                  `json:"schema_version"`
	CreatedAt     time.Time            `json:"created_at"`
	Clients       []models.Client      `json:"clients"`
	Services      []models.Service     `json:"services"`
	Appointments  []models.Appointment `json:"appointments"`
}

// Store persists a named snapshot and returns where it went.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Take reads every table in one transaction so the snapshot is consistent.
func Take(ctx context.Context, gdb *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{
		SchemaVersion: db.LatestVersion(),
		CreatedAt:     time.Now().UTC(),
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&snap.Clients).Error; err != nil {
			return fmt.Errorf("read clients: %w", err)
		}
		if err := tx.Order("id").Find(&snap.Services).Error; err != nil {
			return fmt.Errorf("read services: %w", err)
		}
		if err := tx.Order("id").Find(&snap.Appointments).Error; err != nil {
			return fmt.Errorf("read appointments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Name builds a sortable, collision-free object name.
func Name(at time.Time) string {
	return fmt.Sprintf("massage-%s-%s.json", at.UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
}

type Service struct {
	db    *gorm.DB
	store Store
}

func NewService(gdb *gorm.DB, store Store) *Service {
	return &Service{db: gdb, store: store}
}

// Run takes a snapshot and stores it.
func (s *Service) Run(ctx context.Context) (string, error) {
	snap, err := Take(ctx, s.db)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	loc, err := s.store.Put(ctx, Name(snap.CreatedAt), data)
	if err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	return loc, nil
}
