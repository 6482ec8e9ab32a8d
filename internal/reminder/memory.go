package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MemoryQueue runs jobs on in-process timers. Pending jobs are lost when the
// process exits; the resync job rebuilds them on start.
type MemoryQueue struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	handler Handler
	ctx     context.Context
}

func NewMemoryQueue(ctx context.Context, h Handler) *MemoryQueue {
	return &MemoryQueue{
		timers:  make(map[string]*time.Timer),
		handler: h,
		ctx:     ctx,
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, key string, appointmentID uint, fireAt time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(time.Until(fireAt), func() {
		q.mu.Lock()
		if q.timers[key] != timer {
			q.mu.Unlock()
			return
		}
		delete(q.timers, key)
		q.mu.Unlock()

		if err := q.handler(q.ctx, appointmentID); err != nil {
			log.Error().Err(err).Str("key", key).Msg("reminder job failed")
		}
	})
	q.timers[key] = timer
	return nil
}

func (q *MemoryQueue) Cancel(_ context.Context, key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[key]; ok {
		t.Stop()
		delete(q.timers, key)
	}
	return nil
}

func (q *MemoryQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}
