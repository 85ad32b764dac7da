package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// AssignmentSweepJob periodically runs the assignment operation for every
// registered courier. Couriers that already hold an open run get it back
// unchanged; couriers with nothing to carry get a "no run" outcome. Both
// are quiet; only real failures are logged.
type AssignmentSweepJob struct {
	listHandler   queries.ListCourierIDsQueryHandler
	assignHandler commands.AssignOrdersCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewAssignmentSweepJob creates the sweep job. The schedule is a cron
// expression with a seconds field, e.g. "*/5 * * * * *".
func NewAssignmentSweepJob(
	listHandler queries.ListCourierIDsQueryHandler,
	assignHandler commands.AssignOrdersCommandHandler,
	logger *slog.Logger,
) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		listHandler:   listHandler,
		assignHandler: assignHandler,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "assignment_sweep_job"),
	}
}

// Start begins the sweep on the given schedule.
func (j *AssignmentSweepJob) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Assignment sweep job started", "schedule", schedule)
	return nil
}

// Stop stops the sweep job.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Assignment sweep job stopped")
}

func (j *AssignmentSweepJob) sweep() {
	ctx := context.Background()

	courierIDs, err := j.listHandler.Handle(ctx, queries.NewListCourierIDsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment sweep failed to list couriers", "error", err)
		return
	}

	for _, courierID := range courierIDs {
		cmd := commands.NewAssignOrdersCommand(courierID)
		if _, err := j.assignHandler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Assignment sweep failed for courier",
				"courierId", courierID.Int64(), "error", err)
		}
	}
}
