package jobs

import (
	"context"
	"fmt"

	"github.com/kotraore/stock-forecast-dashboard/internal/snapshot"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

// SnapshotJob regenerates the forecast document on a cron schedule.
// 장 마감 후 1회 실행을 기본으로 한다.
type SnapshotJob struct {
	service  *snapshot.Service
	schedule string
	logger   *logger.Logger
}

// NewSnapshotJob creates a new snapshot refresh job.
func NewSnapshotJob(service *snapshot.Service, schedule string, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name implements scheduler.Job.
func (j *SnapshotJob) Name() string {
	return "snapshot_refresh"
}

// Schedule implements scheduler.Job.
func (j *SnapshotJob) Schedule() string {
	return j.schedule
}

// Run implements scheduler.Job.
func (j *SnapshotJob) Run(ctx context.Context) error {
	doc, results, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("snapshot refresh: %w", err)
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"succeeded": len(doc.Snapshots),
		"failed":    failed,
		"path":      j.service.OutputPath(),
	}).Info("Scheduled snapshot refresh completed")

	return nil
}
