// Package tui is the terminal presentation layer: a month agenda and the
// statistics report.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

// MonthCounter returns per-day appointment counts for a month.
type MonthCounter interface {
	Execute(ctx context.Context, year, month int, status string) ([]dto.DayCount, error)
}

// DayLister returns the appointments of one local day ordered by start.
type DayLister interface {
	Execute(ctx context.Context, date time.Time) ([]dto.AppointmentView, error)
}

type monthLoadedMsg struct {
	year   int
	month  time.Month
	counts map[string]int
}

type dayLoadedMsg struct {
	day   string
	items []dto.AppointmentView
}

type errorMsg struct {
	err error
}

// AgendaModel mirrors the calendar screen: month grid on the left with a badge
// per busy day, the selected day's appointments on the right.
type AgendaModel struct {
	months MonthCounter
	days   DayLister
	loc    *time.Location

	selected time.Time
	counts   map[string]int
	items    []dto.AppointmentView
	err      error

	keys  keyMap
	help  help.Model
	width int
}

func NewAgendaModel(months MonthCounter, days DayLister, loc *time.Location, now time.Time) AgendaModel {
	now = now.In(loc)
	return AgendaModel{
		months:   months,
		days:     days,
		loc:      loc,
		selected: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc),
		counts:   map[string]int{},
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m AgendaModel) Selected() time.Time { return m.selected }

func (m AgendaModel) Init() tea.Cmd {
	return tea.Batch(m.loadMonth(), m.loadDay())
}

func (m AgendaModel) loadMonth() tea.Cmd {
	year, month := m.selected.Year(), m.selected.Month()
	months := m.months
	return func() tea.Msg {
		rows, err := months.Execute(context.Background(), year, int(month), "")
		if err != nil {
			return errorMsg{err: fmt.Errorf("load month: %w", err)}
		}
		counts := make(map[string]int, len(rows))
		for _, r := range rows {
			counts[r.Day] = r.Count
		}
		return monthLoadedMsg{year: year, month: month, counts: counts}
	}
}

func (m AgendaModel) loadDay() tea.Cmd {
	day := m.selected
	days := m.days
	loc := m.loc
	return func() tea.Msg {
		items, err := days.Execute(context.Background(), day)
		if err != nil {
			return errorMsg{err: fmt.Errorf("load day: %w", err)}
		}
		return dayLoadedMsg{day: timezone.DayKey(day, loc), items: items}
	}
}

func (m AgendaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		// a stale month can arrive after fast navigation
		if msg.year == m.selected.Year() && msg.month == m.selected.Month() {
			m.counts = msg.counts
			m.err = nil
		}
		return m, nil

	case dayLoadedMsg:
		if msg.day == timezone.DayKey(m.selected, m.loc) {
			m.items = msg.items
			m.err = nil
		}
		return m, nil

	case errorMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Batch(m.loadMonth(), m.loadDay())
		case key.Matches(msg, m.keys.PrevDay):
			return m.moveTo(m.selected.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.NextDay):
			return m.moveTo(m.selected.AddDate(0, 0, 1))
		case key.Matches(msg, m.keys.PrevWeek):
			return m.moveTo(m.selected.AddDate(0, 0, -7))
		case key.Matches(msg, m.keys.NextWeek):
			return m.moveTo(m.selected.AddDate(0, 0, 7))
		case key.Matches(msg, m.keys.PrevMonth):
			return m.moveTo(firstOfMonth(m.selected).AddDate(0, -1, 0))
		case key.Matches(msg, m.keys.NextMonth):
			return m.moveTo(firstOfMonth(m.selected).AddDate(0, 1, 0))
		case key.Matches(msg, m.keys.Today):
			now := time.Now().In(m.loc)
			return m.moveTo(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.loc))
		}
	}

	return m, nil
}

func (m AgendaModel) moveTo(day time.Time) (tea.Model, tea.Cmd) {
	sameMonth := day.Year() == m.selected.Year() && day.Month() == m.selected.Month()
	m.selected = day
	m.items = nil

	if sameMonth {
		return m, m.loadDay()
	}
	m.counts = map[string]int{}
	return m, tea.Batch(m.loadMonth(), m.loadDay())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (m AgendaModel) View() string {
	left := activeBoxStyle.Render(m.monthView())
	right := boxStyle.Render(m.dayView())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m AgendaModel) monthView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selected.Format("January 2006")))
	b.WriteString("\n")

	head := make([]string, 0, 7)
	for _, d := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		head = append(head, weekdayStyle.Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	first := firstOfMonth(m.selected)
	// Monday-first offset
	offset := (int(first.Weekday()) + 6) % 7
	row := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, dayStyle.Render(""))
	}

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		row = append(row, m.dayCell(d))
		if len(row) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AgendaModel) dayCell(d time.Time) string {
	label := fmt.Sprintf("%d", d.Day())
	n := m.counts[timezone.DayKey(d, m.loc)]
	if n > 0 {
		label = fmt.Sprintf("%d·%d", d.Day(), n)
	}

	switch {
	case d.Equal(m.selected):
		return selectedDayStyle.Render(label)
	case n > 0:
		return busyDayStyle.Render(label)
	default:
		return dayStyle.Render(label)
	}
}

func (m AgendaModel) dayView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selected.Format("Monday 02/01/2006")))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(subtitleStyle.Render("No appointments"))
		return b.String()
	}

	for _, it := range m.items {
		service := "(deleted)"
		if it.ServiceName != nil {
			service = *it.ServiceName
		}
		fmt.Fprintf(&b, "%s-%s  %s  %s  %s\n",
			it.StartTime.In(m.loc).Format("15:04"),
			it.EndTime.In(m.loc).Format("15:04"),
			it.ClientName,
			mutedStyle.Render(service),
			FormatStatus(it.Status),
		)
	}
	return b.String()
}

// RunAgenda starts the full-screen agenda.
func RunAgenda(months MonthCounter, days DayLister, loc *time.Location) error {
	p := tea.NewProgram(NewAgendaModel(months, days, loc, time.Now()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
