package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
)

type fakeMonths struct {
	rows  []dto.DayCount
	err   error
	calls []int
}

func (f *fakeMonths) Execute(_ context.Context, year, month int, _ string) ([]dto.DayCount, error) {
	f.calls = append(f.calls, year*100+month)
	return f.rows, f.err
}

type fakeDays struct {
	items []dto.AppointmentView
}

func (f *fakeDays) Execute(_ context.Context, _ time.Time) ([]dto.AppointmentView, error) {
	return f.items, nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m AgendaModel, msg tea.Msg) AgendaModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(AgendaModel)
	require.True(t, ok)
	return out
}

func TestAgendaNavigation(t *testing.T) {
	loc := time.UTC
	m := NewAgendaModel(&fakeMonths{}, &fakeDays{}, loc, time.Date(2030, 3, 31, 15, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2030, 3, 31, 0, 0, 0, 0, loc), m.Selected())

	m = apply(t, m, keyPress("l"))
	assert.Equal(t, time.Date(2030, 4, 1, 0, 0, 0, 0, loc), m.Selected())

	m = apply(t, m, keyPress("k"))
	assert.Equal(t, time.Date(2030, 3, 25, 0, 0, 0, 0, loc), m.Selected())

	// month moves land on the 1st so short months never overflow
	m = apply(t, m, keyPress("]"))
	assert.Equal(t, time.Date(2030, 4, 1, 0, 0, 0, 0, loc), m.Selected())

	m = apply(t, m, keyPress("["))
	m = apply(t, m, keyPress("["))
	assert.Equal(t, time.Date(2030, 2, 1, 0, 0, 0, 0, loc), m.Selected())
}

func TestAgendaLoadsAndRendersBadges(t *testing.T) {
	loc := time.UTC
	name := "Relax"
	price := decimal.NewFromInt(100)
	months := &fakeMonths{rows: []dto.DayCount{{Day: "2030-03-12", Count: 3}}}
	days := &fakeDays{items: []dto.AppointmentView{{
		ID:           1,
		ClientName:   "Ana",
		ServiceName:  &name,
		ServicePrice: &price,
		StartTime:    time.Date(2030, 3, 12, 9, 0, 0, 0, loc),
		EndTime:      time.Date(2030, 3, 12, 10, 0, 0, 0, loc),
		Status:       "pending",
	}}}

	m := NewAgendaModel(months, days, loc, time.Date(2030, 3, 12, 8, 0, 0, 0, loc))
	m = apply(t, m, m.loadMonth()())
	m = apply(t, m, m.loadDay()())

	assert.Equal(t, []int{203003}, months.calls)

	view := m.View()
	assert.Contains(t, view, "March 2030")
	assert.Contains(t, view, "12·3")
	assert.Contains(t, view, "09:00-10:00")
	assert.Contains(t, view, "Ana")
	assert.Contains(t, view, "Relax")
}

func TestAgendaIgnoresStaleMonth(t *testing.T) {
	loc := time.UTC
	m := NewAgendaModel(&fakeMonths{}, &fakeDays{}, loc, time.Date(2030, 3, 12, 8, 0, 0, 0, loc))

	m = apply(t, m, monthLoadedMsg{year: 2030, month: time.February, counts: map[string]int{"2030-02-01": 1}})
	assert.Empty(t, m.counts)
}

func TestAgendaShowsErrors(t *testing.T) {
	loc := time.UTC
	months := &fakeMonths{err: errors.New("boom")}
	m := NewAgendaModel(months, &fakeDays{}, loc, time.Date(2030, 3, 12, 8, 0, 0, 0, loc))

	m = apply(t, m, m.loadMonth()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "boom")
}

func TestAgendaQuit(t *testing.T) {
	m := NewAgendaModel(&fakeMonths{}, &fakeDays{}, time.UTC, time.Now())
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderStats(t *testing.T) {
	s := &dto.StatsSummary{
		From:    "2030-03-01",
		To:      "2030-03-30",
		Count:   2,
		Revenue: decimal.RequireFromString("150.5"),
		ByDay: []dto.DayTotal{
			{Day: "2030-03-02", Count: 2, Total: decimal.RequireFromString("150.5")},
		},
		ByService: []dto.ServiceTotal{
			{Service: "Relax", Count: 2, Total: decimal.RequireFromString("150.5")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderStats(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "150.50")
	assert.Contains(t, out, "Relax")
	assert.Contains(t, out, "2030-03-02")
}

func TestRenderStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderStats(&buf, &dto.StatsSummary{From: "a", To: "b", Revenue: decimal.Zero}))
	assert.Contains(t, buf.String(), "No completed sessions")
}
