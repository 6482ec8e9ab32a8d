package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/audit"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
)

func TestDispatcherFollowsBroker(t *testing.T) {
	gdb := testutil.NewDB(t)
	logger := audit.New(gdb)
	d := audit.NewDispatcher(logger)

	b := events.NewBroker(8)
	stop := d.Follow(b)

	b.Publish(events.Event{Topic: events.TopicAppointments, Action: events.ActionCreated, ID: 3})
	b.Publish(events.Event{Topic: events.TopicReminders, Action: events.ActionReminder, ID: 3})
	b.Publish(events.Event{Topic: events.TopicClients, Action: events.ActionDeleted, ID: 9})

	require.Eventually(t, func() bool {
		_, total, err := logger.List(context.Background(), audit.Filter{})
		return err == nil && total == 2
	}, 2*time.Second, 20*time.Millisecond)

	stop()

	logs, total, err := logger.List(context.Background(), audit.Filter{Entity: "appointment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_created", logs[0].Action)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, uint(3), *logs[0].EntityID)
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *audit.Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "x"}) })
}

func TestDispatcherShutdownWhileFollowing(t *testing.T) {
	gdb := testutil.NewDB(t)
	logger := audit.New(gdb)
	d := audit.NewDispatcher(logger)

	b := events.NewBroker(64)
	stop := d.Follow(b)

	publishing := make(chan struct{})
	go func() {
		defer close(publishing)
		for i := 1; i <= 200; i++ {
			b.Publish(events.Event{Topic: events.TopicClients, Action: events.ActionCreated, ID: uint(i)})
		}
	}()

	assert.NotPanics(t, func() {
		stop()
		d.Close()
		d.Close()
		d.Dispatch(audit.Event{Action: "late"})
	})
	<-publishing

	_, total, err := logger.List(context.Background(), audit.Filter{Action: "late"})
	require.NoError(t, err)
	assert.Zero(t, total)
}
