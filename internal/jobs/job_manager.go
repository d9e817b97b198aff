package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoDispatchJob *AutoDispatchJob
}

// NewJobManager creates a job manager. A nil job means automatic dispatch is
// disabled and StartAll does nothing.
func NewJobManager(autoDispatchJob *AutoDispatchJob) *JobManager {
	return &JobManager{
		autoDispatchJob: autoDispatchJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.autoDispatchJob == nil {
		return nil
	}

	if err := jm.autoDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.autoDispatchJob != nil {
		jm.autoDispatchJob.Stop()
	}
}
