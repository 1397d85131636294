package bot

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the reference posting cadence.
const DefaultInterval = 5 * time.Minute

// Scheduler drives the pipeline: one immediate pass on start, then one
// pass per tick until the context is cancelled. Passes run strictly
// sequentially within the loop.
type Scheduler struct {
	pipeline *Pipeline
	interval time.Duration
}

func NewScheduler(pipeline *Pipeline, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		pipeline: pipeline,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("scheduler started", "interval", s.interval.String())

	s.runPass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

// runPass recovers anything escaping a pass so one bad pass cannot take
// down the scheduling loop.
func (s *Scheduler) runPass(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline pass panicked", "panic", r)
		}
	}()

	start := time.Now()
	slog.Info("pipeline pass started")
	s.pipeline.Run(ctx)
	slog.Info("pipeline pass finished", "duration", time.Since(start).String())
}
