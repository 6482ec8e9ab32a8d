package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/massage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
)

func d(day, hour int) time.Time {
	return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
}

func TestSummary(t *testing.T) {
	gdb := testutil.NewDB(t)
	ana := testutil.MustClient(t, gdb, "Ana", "")
	relax := testutil.MustService(t, gdb, "Relax Massage", 60, "1000")
	deep := testutil.MustService(t, gdb, "Deep Tissue", 90, "1500")

	testutil.MustAppointment(t, gdb, ana, relax, d(2, 9), "done")
	testutil.MustAppointment(t, gdb, ana, relax, d(2, 11), "done")
	testutil.MustAppointment(t, gdb, ana, deep, d(4, 10), "done")
	testutil.MustAppointment(t, gdb, ana, deep, d(4, 14), "pending")
	testutil.MustAppointment(t, gdb, ana, deep, d(5, 14), "canceled")
	testutil.MustAppointment(t, gdb, ana, relax, d(20, 10), "done")

	uc := NewSummary(repository.NewAppointmentGormRepository(gdb), time.UTC)
	got, err := uc.Execute(context.Background(), d(1, 0), d(10, 0))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", got.From)
	assert.Equal(t, "2025-06-10", got.To)
	assert.Equal(t, 3, got.Count)
	assert.True(t, decimal.NewFromInt(3500).Equal(got.Revenue), got.Revenue.String())

	require.Len(t, got.ByDay, 2)
	assert.Equal(t, "2025-06-02", got.ByDay[0].Day)
	assert.Equal(t, 2, got.ByDay[0].Count)
	assert.True(t, decimal.NewFromInt(2000).Equal(got.ByDay[0].Total))

	require.Len(t, got.ByService, 2)
	assert.Equal(t, "Relax Massage", got.ByService[0].Service)
	assert.Equal(t, "Deep Tissue", got.ByService[1].Service)
}

func TestSummaryDeletedService(t *testing.T) {
	gdb := testutil.NewDB(t)
	ana := testutil.MustClient(t, gdb, "Ana", "")
	gone := testutil.MustService(t, gdb, "Old Treatment", 30, "700")
	testutil.MustAppointment(t, gdb, ana, gone, d(3, 9), "done")
	require.NoError(t, gdb.Delete(&models.Service{}, gone.ID).Error)

	uc := NewSummary(repository.NewAppointmentGormRepository(gdb), time.UTC)
	got, err := uc.Execute(context.Background(), d(1, 0), d(30, 0))
	require.NoError(t, err)

	require.Len(t, got.ByService, 1)
	assert.Equal(t, DeletedService, got.ByService[0].Service)
	assert.Equal(t, 1, got.Count)
	assert.True(t, got.Revenue.IsZero())
}

func TestSummaryCacheFlushedOnWrite(t *testing.T) {
	gdb := testutil.NewDB(t)
	ana := testutil.MustClient(t, gdb, "Ana", "")
	relax := testutil.MustService(t, gdb, "Relax Massage", 60, "1000")

	b := events.NewBroker(4)
	uc := NewSummary(repository.NewAppointmentGormRepository(gdb), time.UTC)
	pub := uc.Invalidating(b)

	ctx := context.Background()
	first, err := uc.Execute(ctx, d(1, 0), d(30, 0))
	require.NoError(t, err)
	assert.Zero(t, first.Count)

	testutil.MustAppointment(t, gdb, ana, relax, d(3, 9), "done")

	cached, err := uc.Execute(ctx, d(1, 0), d(30, 0))
	require.NoError(t, err)
	assert.Zero(t, cached.Count)

	pub.Publish(events.Event{Topic: events.TopicReminders, Action: events.ActionReminder})
	cached, err = uc.Execute(ctx, d(1, 0), d(30, 0))
	require.NoError(t, err)
	assert.Zero(t, cached.Count)

	pub.Publish(events.Event{Topic: events.TopicAppointments, Action: events.ActionCreated})

	got, err := uc.Execute(ctx, d(1, 0), d(30, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

// blockingSource lets a write land while a summary is being computed.
type blockingSource struct {
	Source
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) ListAppointmentsForPeriod(
	ctx context.Context,
	start, end time.Time,
	status domain.Status,
) ([]models.Appointment, error) {
	apps, err := s.Source.ListAppointmentsForPeriod(ctx, start, end, status)
	if s.started != nil {
		close(s.started)
		<-s.release
		s.started = nil
	}
	return apps, err
}

func TestSummaryComputedAcrossWriteIsNotServed(t *testing.T) {
	gdb := testutil.NewDB(t)
	ana := testutil.MustClient(t, gdb, "Ana", "")
	relax := testutil.MustService(t, gdb, "Relax Massage", 60, "1000")

	src := &blockingSource{
		Source:  repository.NewAppointmentGormRepository(gdb),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := NewSummary(src, time.UTC)
	ctx := context.Background()

	started := src.started
	done := make(chan int)
	go func() {
		got, err := uc.Execute(ctx, d(1, 0), d(30, 0))
		if err != nil {
			done <- -1
			return
		}
		done <- got.Count
	}()

	<-started
	testutil.MustAppointment(t, gdb, ana, relax, d(3, 9), "done")
	uc.Invalidate()
	close(src.release)
	assert.Zero(t, <-done)

	got, err := uc.Execute(ctx, d(1, 0), d(30, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

func TestDefaultRange(t *testing.T) {
	uc := NewSummary(nil, time.UTC)
	uc.now = func() time.Time { return time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC) }

	from, to := uc.DefaultRange()
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), to)
}
