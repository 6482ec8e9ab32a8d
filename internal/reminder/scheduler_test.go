package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestTriggerTime(t *testing.T) {
	lead := 30 * time.Minute

	tests := []struct {
		name   string
		start  time.Time
		want   time.Time
		wantOK bool
	}{
		{"start in past", now.Add(-time.Minute), time.Time{}, false},
		{"start now", now, time.Time{}, false},
		{"trigger in future", now.Add(2 * time.Hour), now.Add(90 * time.Minute), true},
		{"trigger passed", now.Add(10 * time.Minute), now.Add(ASAPDelay), true},
		{"trigger exactly now", now.Add(lead), now.Add(ASAPDelay), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TriggerTime(tt.start, now, lead)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

type call struct {
	op     string
	key    string
	fireAt time.Time
}

type recordingQueue struct {
	mu    sync.Mutex
	calls []call
}

func (q *recordingQueue) Enqueue(_ context.Context, key string, _ uint, fireAt time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, call{"enqueue", key, fireAt})
	return nil
}

func (q *recordingQueue) Cancel(_ context.Context, key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, call{op: "cancel", key: key})
	return nil
}

func newTestScheduler(q Queue) *Scheduler {
	s := NewScheduler(q, metrics.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestSchedulerSchedule(t *testing.T) {
	q := &recordingQueue{}
	s := newTestScheduler(q)
	ctx := context.Background()

	require.NoError(t, s.Schedule(ctx, 7, now.Add(time.Hour), 30*time.Minute))
	require.NoError(t, s.Schedule(ctx, 8, now.Add(-time.Hour), 30*time.Minute))

	require.Len(t, q.calls, 2)
	assert.Equal(t, call{"enqueue", "appointment_reminder_7", now.Add(30 * time.Minute)}, q.calls[0])
	assert.Equal(t, call{op: "cancel", key: "appointment_reminder_8"}, q.calls[1])
}

type pendingList []models.Appointment

func (p pendingList) ListPendingFrom(context.Context, time.Time, int) ([]models.Appointment, error) {
	return p, nil
}

func TestResync(t *testing.T) {
	thirty := 30
	apps := pendingList{
		{ID: 1, StartTime: now.Add(3 * time.Hour), ReminderMin: &thirty},
		{ID: 2, StartTime: now.Add(10 * time.Minute), ReminderMin: &thirty},
		{ID: 3, StartTime: now.Add(3 * time.Hour)},
	}

	q := &recordingQueue{}
	n, err := newTestScheduler(q).Resync(context.Background(), apps, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "appointment_reminder_1", q.calls[0].key)

	q = &recordingQueue{}
	n, err = newTestScheduler(q).Resync(context.Background(), apps, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, now.Add(ASAPDelay), q.calls[1].fireAt)
}
