package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/audit"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	loc  *time.Location
}

func NewAuditLogsHandler(logs *audit.Logger, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}

	from, ok := queryDate(c, "from", h.loc)
	if !ok {
		return
	}
	to, ok := queryDate(c, "to", h.loc)
	if !ok {
		return
	}
	// the end day is inclusive
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "audit_list_failed")
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	httpresp.Page(c, logs, page, limit, total)
}
