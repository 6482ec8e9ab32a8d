package handlers

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/chart"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
	ucStats "github.com/BruksfildServices01/massage-scheduler/internal/usecase/stats"
)

type StatsHandler struct {
	summary *ucStats.Summary
	loc     *time.Location
}

func NewStatsHandler(summary *ucStats.Summary, loc *time.Location) *StatsHandler {
	return &StatsHandler{summary: summary, loc: loc}
}

// load resolves ?from=&to= (inclusive local days, last 30 days by default).
func (h *StatsHandler) load(c *gin.Context) (*dto.StatsSummary, bool) {
	from, to := h.summary.DefaultRange()

	f, ok := queryDate(c, "from", h.loc)
	if !ok {
		return nil, false
	}
	t, ok := queryDate(c, "to", h.loc)
	if !ok {
		return nil, false
	}
	if f != nil {
		from = *f
	}
	if t != nil {
		to = *t
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_range", "The end date is before the start date.")
		return nil, false
	}

	s, err := h.summary.Execute(c.Request.Context(), from, to)
	if err != nil {
		httperr.Respond(c, err, "failed_to_load_stats")
		return nil, false
	}
	return s, true
}

func (h *StatsHandler) Summary(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, s)
}

// Chart renders ?kind=day|service totals as ?format=webp|png.
func (h *StatsHandler) Chart(c *gin.Context) {
	format, ok := chart.ParseFormat(c.Query("format"))
	if !ok {
		httperr.BadRequest(c, "invalid_format", "Use webp or png.")
		return
	}

	kind := c.DefaultQuery("kind", "day")
	if kind != "day" && kind != "service" {
		httperr.BadRequest(c, "invalid_kind", "Use day or service.")
		return
	}

	s, ok := h.load(c)
	if !ok {
		return
	}

	var (
		title string
		bars  []chart.Bar
	)
	if kind == "day" {
		title = "Revenue per day " + s.From + " - " + s.To
		for _, d := range s.ByDay {
			bars = append(bars, chart.Bar{Label: d.Day, Value: d.Total})
		}
	} else {
		title = "Revenue per service " + s.From + " - " + s.To
		for _, r := range s.ByService {
			bars = append(bars, chart.Bar{Label: r.Service, Value: r.Total})
		}
	}

	var buf bytes.Buffer
	if err := chart.Encode(&buf, chart.Render(title, bars), format); err != nil {
		httperr.Respond(c, err, "failed_to_render_chart")
		return
	}
	c.Data(200, format.ContentType(), buf.Bytes())
}
