package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotraore/stock-forecast-dashboard/pkg/config"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func newTestScheduler() *Scheduler {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	s := New(log)
	s.retryDelay = time.Millisecond
	return s
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler()

	job := &stubJob{name: "snapshot_refresh", schedule: "0 30 21 * * MON-FRI"}
	require.NoError(t, s.AddJob(job))

	// Duplicate registration is rejected
	err := s.AddJob(&stubJob{name: "snapshot_refresh", schedule: "@daily"})
	assert.Error(t, err)
}

func TestAddJobInvalidSchedule(t *testing.T) {
	s := newTestScheduler()

	err := s.AddJob(&stubJob{name: "bad", schedule: "not a cron spec"})
	assert.Error(t, err)
}

func TestRunJobNotFound(t *testing.T) {
	s := newTestScheduler()

	err := s.RunJob("missing")
	assert.Error(t, err)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := newTestScheduler()

	job := &stubJob{name: "snapshot_refresh", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("snapshot_refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, "snapshot_refresh", history.Results[0].JobName)
	assert.Equal(t, 1, job.runs)
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := newTestScheduler()

	job := &stubJob{name: "snapshot_refresh", schedule: "@daily", err: errors.New("provider unreachable")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	// Initial attempt plus maxRetries
	assert.Equal(t, 3, job.runs)

	history, err := s.GetJobHistory("snapshot_refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "provider unreachable", history.Results[0].Error)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	assert.Equal(t, 0.0, h.GetSuccessRate())
	assert.Empty(t, h.GetLatestResults(5))

	h.AddResult(JobResult{JobName: "a", Success: true})
	h.AddResult(JobResult{JobName: "b", Success: false})
	h.AddResult(JobResult{JobName: "c", Success: true})

	assert.InDelta(t, 2.0/3.0, h.GetSuccessRate(), 1e-9)

	latest := h.GetLatestResults(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "b", latest[0].JobName)
	assert.Equal(t, "c", latest[1].JobName)
}

func TestJobHistoryCap(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{Success: true})
	}

	assert.Len(t, h.Results, 100)
}
