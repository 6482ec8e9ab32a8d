package appointment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/models"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
	uc "github.com/BruksfildServices01/massage-scheduler/internal/usecase/appointment"
)

type reminderCall struct {
	op   string
	id   uint
	lead time.Duration
}

type fakeReminders struct {
	mu    sync.Mutex
	calls []reminderCall
}

func (f *fakeReminders) Schedule(_ context.Context, id uint, _ time.Time, lead time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, reminderCall{"schedule", id, lead})
	return nil
}

func (f *fakeReminders) Cancel(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, reminderCall{op: "cancel", id: id})
	return nil
}

func (f *fakeReminders) last() reminderCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fixture struct {
	db        *gorm.DB
	reminders *fakeReminders
	create    *uc.CreateAppointment
	update    *uc.UpdateAppointment
	setStatus *uc.SetAppointmentStatus
	delete    *uc.DeleteAppointment
	client    *models.Client
	relax     *models.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	repo := repository.NewAppointmentGormRepository(gdb)
	rem := &fakeReminders{}
	pub := events.Nop{}
	m := metrics.NewNop()

	return &fixture{
		db:        gdb,
		reminders: rem,
		create:    uc.NewCreateAppointment(repo, rem, pub, m, 30*time.Minute),
		update:    uc.NewUpdateAppointment(repo, rem, pub, m, 30*time.Minute),
		setStatus: uc.NewSetAppointmentStatus(repo, rem, pub),
		delete:    uc.NewDeleteAppointment(repo, rem, pub),
		client:    testutil.MustClient(t, gdb, "Ana", "+5491100000000"),
		relax:     testutil.MustService(t, gdb, "Relax Massage", 60, "1000"),
	}
}

var base = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func (f *fixture) book(t *testing.T, start time.Time) (*models.Appointment, error) {
	t.Helper()
	return f.create.Execute(context.Background(), uc.CreateAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: f.relax.ID,
		Start:     start,
	})
}

func TestRelaxMassageScenario(t *testing.T) {
	f := setup(t)

	first, err := f.book(t, at(10, 0))
	require.NoError(t, err)
	assert.True(t, at(11, 0).Equal(first.EndTime))
	assert.Equal(t, "pending", first.Status)

	_, err = f.book(t, at(10, 30))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))

	_, err = f.book(t, at(11, 0))
	assert.NoError(t, err, "back-to-back slots are allowed")
}

func TestCancelFreesTheSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap, err := f.book(t, at(10, 0))
	require.NoError(t, err)

	_, err = f.setStatus.Execute(ctx, ap.ID, "canceled")
	require.NoError(t, err)
	assert.Equal(t, reminderCall{op: "cancel", id: ap.ID}, f.reminders.last())

	_, err = f.book(t, at(10, 0))
	assert.NoError(t, err)
}

func TestEditExcludesItself(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap, err := f.book(t, at(10, 0))
	require.NoError(t, err)
	other, err := f.book(t, at(12, 0))
	require.NoError(t, err)

	moved, err := f.update.Execute(ctx, uc.UpdateAppointmentInput{
		ID: ap.ID,
		CreateAppointmentInput: uc.CreateAppointmentInput{
			ClientID:  f.client.ID,
			ServiceID: f.relax.ID,
			Start:     at(10, 30),
			Notes:     "  moved  ",
		},
	})
	require.NoError(t, err)
	assert.True(t, at(11, 30).Equal(moved.EndTime))
	assert.Equal(t, "moved", moved.Notes)

	_, err = f.update.Execute(ctx, uc.UpdateAppointmentInput{
		ID: other.ID,
		CreateAppointmentInput: uc.CreateAppointmentInput{
			ClientID:  f.client.ID,
			ServiceID: f.relax.ID,
			Start:     at(11, 0),
		},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestUpdateMissingIsNoop(t *testing.T) {
	f := setup(t)

	ap, err := f.update.Execute(context.Background(), uc.UpdateAppointmentInput{
		ID: 404,
		CreateAppointmentInput: uc.CreateAppointmentInput{
			ClientID:  f.client.ID,
			ServiceID: f.relax.ID,
			Start:     at(9, 0),
		},
	})
	assert.NoError(t, err)
	assert.Nil(t, ap)
}

func TestEndIsNotRecomputedWhenServiceChanges(t *testing.T) {
	f := setup(t)

	ap, err := f.book(t, at(10, 0))
	require.NoError(t, err)

	require.NoError(t, f.db.Model(f.relax).Update("duration_min", 90).Error)

	var stored models.Appointment
	require.NoError(t, f.db.First(&stored, ap.ID).Error)
	assert.True(t, at(11, 0).Equal(stored.EndTime))
}

func TestStatusTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap, err := f.book(t, at(10, 0))
	require.NoError(t, err)

	_, err = f.setStatus.Execute(ctx, ap.ID, "bogus")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))

	_, err = f.setStatus.Execute(ctx, ap.ID, "pending")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	done, err := f.setStatus.Execute(ctx, ap.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, "done", done.Status)
	assert.Equal(t, reminderCall{op: "cancel", id: ap.ID}, f.reminders.last())

	_, err = f.setStatus.Execute(ctx, ap.ID, "canceled")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	missing, err := f.setStatus.Execute(ctx, 404, "done")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReminderLeadResolution(t *testing.T) {
	f := setup(t)
	ten, off := 10, -1

	ap, err := f.book(t, at(8, 0))
	require.NoError(t, err)
	require.NotNil(t, ap.ReminderMin)
	assert.Equal(t, 30, *ap.ReminderMin)
	assert.Equal(t, reminderCall{"schedule", ap.ID, 30 * time.Minute}, f.reminders.last())

	ap, err = f.create.Execute(context.Background(), uc.CreateAppointmentInput{
		ClientID: f.client.ID, ServiceID: f.relax.ID, Start: at(12, 0), ReminderMin: &ten,
	})
	require.NoError(t, err)
	assert.Equal(t, reminderCall{"schedule", ap.ID, 10 * time.Minute}, f.reminders.last())

	ap, err = f.create.Execute(context.Background(), uc.CreateAppointmentInput{
		ClientID: f.client.ID, ServiceID: f.relax.ID, Start: at(14, 0), ReminderMin: &off,
	})
	require.NoError(t, err)
	assert.Nil(t, ap.ReminderMin)
	assert.Equal(t, reminderCall{op: "cancel", id: ap.ID}, f.reminders.last())
}

func TestCreateValidatesReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, uc.CreateAppointmentInput{ClientID: 999, ServiceID: f.relax.ID, Start: at(9, 0)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))

	_, err = f.create.Execute(ctx, uc.CreateAppointmentInput{ClientID: f.client.ID, ServiceID: 999, Start: at(9, 0)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))

	require.NoError(t, f.db.Model(f.relax).Update("active", false).Error)
	_, err = f.book(t, at(9, 0))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceInactive))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap, err := f.book(t, at(10, 0))
	require.NoError(t, err)

	require.NoError(t, f.delete.Execute(ctx, ap.ID))
	assert.Equal(t, reminderCall{op: "cancel", id: ap.ID}, f.reminders.last())

	var n int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&n).Error)
	assert.Zero(t, n)

	assert.NoError(t, f.delete.Execute(ctx, ap.ID), "deleting a missing id is ignored")
}
