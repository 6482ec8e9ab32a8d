package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
)

// RenderStats writes the KPI totals followed by the per-day and per-service
// tables.
func RenderStats(w io.Writer, s *dto.StatsSummary) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Statistics %s → %s", s.From, s.To)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(kpiLabelStyle.Render("Sessions")+"\n"+kpiValueStyle.Render(strconv.Itoa(s.Count))),
		" ",
		boxStyle.Render(kpiLabelStyle.Render("Revenue")+"\n"+kpiValueStyle.Render(s.Revenue.StringFixed(2))),
	))
	b.WriteString("\n")

	if s.Count == 0 {
		b.WriteString(subtitleStyle.Render("No completed sessions in range"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	days := newTable("Day", "Count", "Total")
	for _, d := range s.ByDay {
		days.Row(d.Day, strconv.Itoa(d.Count), d.Total.StringFixed(2))
	}

	services := newTable("Service", "Count", "Total")
	for _, r := range s.ByService {
		services.Row(r.Service, strconv.Itoa(r.Count), r.Total.StringFixed(2))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days.Render(), "  ", services.Render()))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}
