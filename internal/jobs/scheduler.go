package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"aurora/web/internal/service"
)

type Scheduler struct {
	cron         *cron.Cron
	status       *service.StatusService
	applications *service.ApplicationService
	appeals      *service.AppealService
	log          zerolog.Logger
	interval     time.Duration
}

func NewScheduler(
	status *service.StatusService,
	applications *service.ApplicationService,
	appeals *service.AppealService,
	interval time.Duration,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		status:       status,
		applications: applications,
		appeals:      appeals,
		log:          log,
		interval:     interval,
	}
}

func (s *Scheduler) Start() error {
	seconds := int(s.interval.Seconds())
	if seconds < 1 {
		seconds = 30
	}

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), s.status.Refresh); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 8 * * *", s.logPendingDigest); err != nil { // daily digest
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling; the returned context is done once any
// in-flight job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) logPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pendingApps, err := s.applications.CountPending(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("pending application count failed")
		return
	}
	pendingAppeals, err := s.appeals.CountPending(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("pending appeal count failed")
		return
	}

	s.log.Info().
		Int("pending_applications", pendingApps).
		Int("pending_appeals", pendingAppeals).
		Msg("daily review digest")
}
