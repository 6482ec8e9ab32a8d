package backup_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/massage-scheduler/internal/backup"
	"github.com/BruksfildServices01/massage-scheduler/internal/testutil"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, err := io.ReadAll(in.Body)
	f.body = b
	return &s3.PutObjectOutput{}, err
}

func TestRunToDirectory(t *testing.T) {
	gdb := testutil.NewDB(t)
	testutil.MustClient(t, gdb, "Ana", "+54")
	dir := t.TempDir()

	path, err := backup.NewService(gdb, backup.NewDirStore(dir)).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap backup.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, "Ana", snap.Clients[0].Name)
	assert.Empty(t, snap.Appointments)
}

func TestRunToS3(t *testing.T) {
	gdb := testutil.NewDB(t)
	ana := testutil.MustClient(t, gdb, "Ana", "")
	relax := testutil.MustService(t, gdb, "Relax Massage", 60, "1000")
	testutil.MustAppointment(t, gdb, ana, relax, time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC), "pending")

	fake := &fakeS3{}
	loc, err := backup.NewService(gdb, backup.NewS3StoreWith(fake, "agenda", "backups/")).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, fake.in)
	assert.Equal(t, "agenda", aws.ToString(fake.in.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(fake.in.Key), "backups/massage-"))
	assert.Equal(t, "s3://agenda/"+aws.ToString(fake.in.Key), loc)

	var snap backup.Snapshot
	require.NoError(t, json.Unmarshal(fake.body, &snap))
	assert.Len(t, snap.Appointments, 1)
	assert.Len(t, snap.Services, 1)
}
