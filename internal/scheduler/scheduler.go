// Package scheduler re-runs the analysis pipeline on a cron schedule
// (watch mode) and records each run.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockScope/internal/analysis"
	"StockScope/internal/recorder"
	"StockScope/internal/report"
)

// Scheduler owns the watch-mode cron task.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *analysis.Pipeline
	Recorder recorder.Recorder
	Params   analysis.Params
	Options  report.Options
}

// NewScheduler creates a watch scheduler. The cron expression uses seconds
// resolution, like "0 30 22 * * 1-5".
func NewScheduler(p *analysis.Pipeline, rec recorder.Recorder, params analysis.Params, opts report.Options) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Recorder: rec,
		Params:   params,
		Options:  opts,
	}
}

// Register registers the watch task.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the watch task immediately (manual trigger / startup).
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	log.Printf("[INFO] running watch analysis for %s", s.Params.Ticker)

	// Slide the window end to today so a long-running watch keeps
	// following the market.
	params := s.Params
	if today := time.Now().UTC().Truncate(24 * time.Hour); today.After(params.End) {
		params.End = today
	}

	rep, err := s.Pipeline.Run(params)
	if err != nil {
		log.Printf("[ERROR] watch analysis: %v", err)
		return
	}

	fmt.Print(report.FormatReport(rep, s.Options))

	if err := s.Recorder.RecordRun(recorder.NewRunRecord(rep)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
