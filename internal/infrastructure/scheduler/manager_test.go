package scheduler

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 3, nil
}

func TestSchedulerManager_RegisterOrphanSweepJob(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.RegisterOrphanSweepJob(&countingJob{}, ""))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "attachment-orphan-sweep", m.Jobs()[0].Name())

	assert.Error(t, m.RegisterOrphanSweepJob(&countingJob{}, "not a cron"))

	m.Start()
	assert.True(t, m.IsStarted())
	m.Start()
	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}

func TestSchedulerManager_RunBatch(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{}
	m.runBatch(context.Background(), "test", job)
	assert.Equal(t, int32(1), job.calls.Load())
}
