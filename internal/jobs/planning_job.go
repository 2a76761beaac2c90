package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// planningSchedule runs the cycle at the top of every minute. Planning is a
// batch operation over the whole pending backlog, so per-second runs would
// only contend on the planner mutex.
const planningSchedule = "0 * * * * *"

// PlanningJob runs the logistics planning cycle on a fixed schedule,
// sweeping pending orders into vehicle assignments and shipments.
type PlanningJob struct {
	handler *commands.PlanLogisticsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPlanningJob creates the scheduled planning job.
func NewPlanningJob(handler *commands.PlanLogisticsCommandHandler, logger *slog.Logger) *PlanningJob {
	return &PlanningJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "planning_job"),
	}
}

// Start begins the planning job.
func (j *PlanningJob) Start() error {
	_, err := j.cron.AddFunc(planningSchedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewPlanLogisticsCommand(time.Now(), nil)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build planning command", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Planning cycle failed", "error", err)
			return
		}

		// An empty cycle is the usual case between order bursts; stay quiet.
		if len(result.Outcomes) > 0 {
			j.logger.InfoContext(ctx, "Planning cycle completed",
				"plan_id", result.PlanID.String(),
				"routes", len(result.Routes),
				"orders", len(result.Outcomes),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Planning job started (running every minute)")
	return nil
}

// Stop stops the planning job.
func (j *PlanningJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Planning job stopped")
}
