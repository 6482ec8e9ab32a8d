package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/seed"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
	"github.com/BruksfildServices01/massage-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/massage-scheduler/internal/usecase/client"
)

const catalogYAML = `
services:
  - name: Relax Massage
    duration_min: 60
    price: "1000"
  - name: Reflexology
    duration_min: 30
    price: "550.50"
    active: false
clients:
  - name: Ana
    phone: "+54 11 5555 0000"
    notes: prefers mornings
`

func newImporter(t *testing.T) (*seed.Importer, *catalog.Services) {
	t.Helper()
	gdb := testutil.NewDB(t)
	services := catalog.New(repository.NewServiceGormRepository(gdb), events.Nop{})
	clients := client.New(repository.NewClientGormRepository(gdb), events.Nop{})
	return seed.NewImporter(services, clients), services
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	im, services := newImporter(t)

	f, err := seed.Parse(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	res, err := im.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{ServicesCreated: 2, ClientsCreated: 1}, *res)

	res, err = im.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{ServicesSkipped: 2, ClientsSkipped: 1}, *res)

	active, err := services.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Relax Massage", active[0].Name)
}

func TestImportValidates(t *testing.T) {
	im, _ := newImporter(t)

	f, err := seed.Parse(strings.NewReader("services:\n  - name: Broken\n    duration_min: 0\n"))
	require.NoError(t, err)

	_, err = im.Import(context.Background(), f)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDuration))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("servicez: []\n"))
	assert.Error(t, err)
}
