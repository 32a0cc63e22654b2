// File: internal/jobs/registry_report.go
package jobs

import (
	"context"
	"time"

	"credential_store_backend/internal/auth"
	"credential_store_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RegistryCounter reports the size of the user registry.
type RegistryCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SessionInspector exposes the active session.
type SessionInspector interface {
	ActiveSession() (auth.Session, bool)
}

// RegistryReportJob periodically logs the registry size and the session state.
type RegistryReportJob struct {
	users         RegistryCounter
	sessions      SessionInspector
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
	now           func() time.Time
}

// NewRegistryReportJob creates a new RegistryReportJob.
func NewRegistryReportJob(
	users RegistryCounter,
	sessions SessionInspector,
	logger *zap.Logger,
	cfg *config.Config,
) *RegistryReportJob {
	cl := NewCronLogger(logger.Named("cron"))
	scheduler := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &RegistryReportJob{
		users:         users,
		sessions:      sessions,
		logger:        logger.Named("RegistryReportJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
		now:           time.Now,
	}
}

// SetupAndStart schedules and starts the cron job. An empty schedule disables it.
func (j *RegistryReportJob) SetupAndStart() error {
	jobSpec := j.cfg.RegistryReportSchedule
	if jobSpec == "" {
		j.logger.Warn("Registry report schedule not defined (REGISTRY_REPORT_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule registry report job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Registry report job scheduled", zap.String("spec", jobSpec), zap.Int("jobID", int(jobID)))
	j.cronScheduler.Start()
	return nil
}

func (j *RegistryReportJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	j.Report(ctx)
}

// Report logs one snapshot of the registry and the session.
func (j *RegistryReportJob) Report(ctx context.Context) {
	count, err := j.users.Count(ctx)
	if err != nil {
		j.logger.Error("Registry report failed", zap.Error(err))
		return
	}

	fields := []zap.Field{zap.Int64("registered_users", count)}
	if sess, ok := j.sessions.ActiveSession(); ok {
		fields = append(fields,
			zap.Bool("session_active", true),
			zap.String("session_user_id", sess.UserID.String()),
			zap.Duration("session_age", j.now().Sub(sess.StartedAt)),
		)
	} else {
		fields = append(fields, zap.Bool("session_active", false))
	}
	j.logger.Info("Registry report", fields...)
}

// Stop gracefully stops the cron scheduler.
func (j *RegistryReportJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping registry report scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Registry report scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Registry report scheduler stop timed out.")
	}
}
