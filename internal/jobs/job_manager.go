package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// Default sweep schedule: every five seconds.
const defaultSweepSchedule = "*/5 * * * * *"

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	assignmentSweepJob *AssignmentSweepJob
	sweepSchedule      string
}

// NewJobManager creates a job manager with all required jobs wired to
// their command and query handlers.
func NewJobManager(
	listCourierIDsHandler queries.ListCourierIDsQueryHandler,
	assignOrdersHandler commands.AssignOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentSweepJob: NewAssignmentSweepJob(listCourierIDsHandler, assignOrdersHandler, logger),
		sweepSchedule:      defaultSweepSchedule,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentSweepJob.Start(jm.sweepSchedule); err != nil {
		return fmt.Errorf("failed to start assignment sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentSweepJob.Stop()
}
