package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
)

func TestClientListSearch(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	repo := repository.NewClientGormRepository(gdb)

	testutil.MustClient(t, gdb, "Marta", "+54 11 5555")
	testutil.MustClient(t, gdb, "ana", "+54 11 4444")
	testutil.MustClient(t, gdb, "Bruno", "")

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName, err := repo.List(ctx, "MAR")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Marta", byName[0].Name)

	byPhone, err := repo.List(ctx, "4444")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "ana", byPhone[0].Name)
}
