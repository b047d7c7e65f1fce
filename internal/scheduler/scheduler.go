// Package scheduler runs the recurring portfolio jobs: the daily value
// snapshot after market close, snapshot retention cleanup, and the month-end
// summary check.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/portfoliotracker/backend/internal/clock"
	"github.com/portfoliotracker/backend/internal/service"
)

// Cron expressions, evaluated in the market timezone.
const (
	// Weekdays at 16:00, after market close.
	scheduleDailySnapshot = "0 16 * * 1-5"
	// Sundays at 02:00.
	scheduleCleanup = "0 2 * * 0"
	// Every day at 23:55; the job itself fires only on the last calendar
	// day of the month.
	scheduleMonthEnd = "55 23 * * *"
)

// jobTimeout bounds each job run.
const jobTimeout = 5 * time.Minute

// Scheduler owns the cron runner and the jobs it executes.
type Scheduler struct {
	cron      *cron.Cron
	snapshots *service.SnapshotService
	summaries *service.SummaryService
}

// New creates a Scheduler with all jobs registered. Call Start to begin.
func New(clk clock.Clock, snapshots *service.SnapshotService, summaries *service.SummaryService) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(clk.Location())),
		snapshots: snapshots,
		summaries: summaries,
	}

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{scheduleDailySnapshot, "daily snapshot", s.runDailySnapshot},
		{scheduleCleanup, "snapshot cleanup", s.runCleanup},
		{scheduleMonthEnd, "month-end summary", s.runMonthEnd},
	}

	for _, job := range jobs {
		job := job
		_, err := s.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("scheduler: %s job panicked: %v", job.name, r)
				}
			}()

			if err := job.run(ctx); err != nil {
				log.Printf("scheduler: %s job failed: %v", job.name, err)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("scheduler started")
}

// Stop stops the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("scheduler stopped")
}

func (s *Scheduler) runDailySnapshot(ctx context.Context) error {
	snapshot, created, err := s.snapshots.SaveTodayIfMissing(ctx)
	if err != nil {
		return err
	}
	if created {
		log.Printf("scheduler: saved daily snapshot for %s (total %s)",
			snapshot.Date.Format("2006-01-02"), snapshot.TotalValue.StringFixed(2))
	}
	return nil
}

func (s *Scheduler) runCleanup(ctx context.Context) error {
	removed, err := s.snapshots.Cleanup(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("scheduler: removed %d expired snapshots", removed)
	}
	return nil
}

func (s *Scheduler) runMonthEnd(ctx context.Context) error {
	summary, created, err := s.summaries.EnsureMonthEnd(ctx)
	if err != nil {
		return err
	}
	if created {
		log.Printf("scheduler: saved month-end summary for %d-%02d", summary.Year, summary.Month)
	}
	return nil
}
