package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
)

const heartbeatInterval = 25 * time.Second

// StreamHandler pushes broker events as Server-Sent Events. Screens re-query
// whatever they show when an event for their topic arrives.
type StreamHandler struct {
	broker    *events.Broker
	metrics   *metrics.Metrics
	heartbeat time.Duration
}

func NewStreamHandler(b *events.Broker, m *metrics.Metrics) *StreamHandler {
	return &StreamHandler{broker: b, metrics: m, heartbeat: heartbeatInterval}
}

func (h *StreamHandler) Stream(c *gin.Context) {
	ch, cancel := h.broker.Subscribe()
	defer cancel()

	h.metrics.StreamClients.Inc()
	defer h.metrics.StreamClients.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// send headers now so clients see the stream open before the first event
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Topic, ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Unix())
			return true
		}
	})
}
