package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

// pathID reads :id; on failure the 400 is already written.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return n, true
}

func queryBool(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}

// queryDate parses an optional YYYY-MM-DD parameter in loc. A missing value
// yields nil.
func queryDate(c *gin.Context, name string, loc *time.Location) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	t, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use the YYYY-MM-DD format.")
		return nil, false
	}
	return &t, true
}

// yearMonth reads ?year=&month=, defaulting to the current local month.
func yearMonth(c *gin.Context, loc *time.Location) (int, int, bool) {
	now := time.Now().In(loc)

	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return 0, 0, false
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Month must be between 1 and 12.")
		return 0, 0, false
	}
	return year, month, true
}
