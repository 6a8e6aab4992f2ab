package scheduler

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tps-admin/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init("", false)
	os.Exit(m.Run())
}

func TestAddAndRunJob(t *testing.T) {
	s := NewJobScheduler()

	calls := 0
	require.NoError(t, s.AddJob("sweep", "*/5 * * * *", func() error {
		calls++
		return nil
	}))
	require.NoError(t, s.RunJob("sweep"))
	require.NoError(t, s.RunJob("sweep"))

	assert.Equal(t, 2, calls)
	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "sweep", jobs[0].ID)
	assert.Equal(t, "*/5 * * * *", jobs[0].CronExpr)
	assert.Equal(t, 2, jobs[0].Runs)
	assert.NotNil(t, jobs[0].LastRun)
	assert.Empty(t, jobs[0].LastError)
}

func TestFailingJobRecordsError(t *testing.T) {
	s := NewJobScheduler()
	require.NoError(t, s.AddJob("broken", "0 * * * *", func() error {
		return errors.New("redis down")
	}))

	require.NoError(t, s.RunJob("broken"))
	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "redis down", jobs[0].LastError)
	assert.Equal(t, 1, jobs[0].Runs)
}

func TestDuplicateAndUnknownJobs(t *testing.T) {
	s := NewJobScheduler()
	noop := func() error { return nil }

	require.NoError(t, s.AddJob("a", "* * * * *", noop))
	assert.Error(t, s.AddJob("a", "* * * * *", noop))
	assert.Error(t, s.RemoveJob("missing"))
	assert.Error(t, s.RunJob("missing"))

	require.NoError(t, s.RemoveJob("a"))
	assert.Empty(t, s.ListJobs())
}

func TestInvalidCron(t *testing.T) {
	s := NewJobScheduler()
	assert.Error(t, s.AddJob("bad", "not a cron", func() error { return nil }))
	assert.Empty(t, s.ListJobs())

	assert.Error(t, ValidateCronExpression("not a cron"))
	assert.NoError(t, ValidateCronExpression("*/5 * * * *"))
}

func TestListJobsSorted(t *testing.T) {
	s := NewJobScheduler()
	noop := func() error { return nil }
	require.NoError(t, s.AddJob("b", "* * * * *", noop))
	require.NoError(t, s.AddJob("a", "* * * * *", noop))

	jobs := s.ListJobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, "b", jobs[1].ID)
}

func TestStartStop(t *testing.T) {
	s := NewJobScheduler()
	assert.False(t, s.IsRunning())

	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}
