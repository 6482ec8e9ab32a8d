package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

func TestExport(t *testing.T) {
	start := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	apps := []models.Appointment{
		{
			ID: 1, StartTime: start, EndTime: start.Add(time.Hour), Status: "pending",
			Client:  models.Client{Name: "Ana"},
			Service: models.Service{ID: 2, Name: "Relax Massage"},
			Notes:   "bring oil",
		},
		{
			ID: 2, StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), Status: "canceled",
			Client: models.Client{Name: "Bruno"},
		},
		{
			ID: 3, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour), Status: "done",
			Client: models.Client{Name: "Carla"},
		},
	}

	out := Export(apps, start)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	assert.Equal(t, "appointment-1@massage-scheduler", events[0].Id())
	assert.Equal(t, "Relax Massage - Ana", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "bring oil", events[0].GetProperty(ical.ComponentPropertyDescription).Value)

	got, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(got))

	assert.Equal(t, "Appointment - Carla", events[1].GetProperty(ical.ComponentPropertySummary).Value)
}
