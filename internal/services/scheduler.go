package services

import (
	"context"
	"errors"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Scheduler is the long-lived polling loop that decides, once per tick,
// whether a new draw is due and runs one pass when it is. A single
// scheduler instance is the sole writer of draw, pair and cycle rows, so
// there are no concurrent-write races by construction.
type Scheduler struct {
	draws        DrawService
	drawRepo     repositories.DrawRepository
	settingsRepo repositories.DrawSettingsRepository
	tickInterval time.Duration
	now          func() time.Time
}

// NewScheduler creates a new Scheduler
func NewScheduler(
	draws DrawService,
	drawRepo repositories.DrawRepository,
	settingsRepo repositories.DrawSettingsRepository,
	tickInterval time.Duration,
) *Scheduler {
	return &Scheduler{
		draws:        draws,
		drawRepo:     drawRepo,
		settingsRepo: settingsRepo,
		tickInterval: tickInterval,
		now:          time.Now,
	}
}

// Run polls until the context is cancelled. The first check happens
// immediately, then once per tick interval. An in-flight tick always runs
// to completion; cancellation is honored at the sleep point.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("draw scheduler started", "tickInterval", s.tickInterval)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.runTick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("draw scheduler stopped")
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

// runTick performs one scheduling decision and, when due, one draw pass.
// Nothing that happens inside a tick may kill the loop: errors are logged
// and the next tick tries again, and a panic is contained the same way.
func (s *Scheduler) runTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("draw tick panicked", "panic", r)
		}
	}()

	due, err := s.drawDue(ctx)
	if err != nil {
		slog.Error("failed to decide whether a draw is due", "error", err)
		return
	}
	if !due {
		return
	}

	if _, _, err := s.draws.PerformDraw(ctx, s.now()); err != nil {
		slog.Error("draw pass failed, will retry next tick", "error", err)
	}
}

// drawDue reports whether a new draw should run now: either no draw was
// ever persisted, or at least one full cadence has elapsed since the last
// one (the boundary is inclusive). An optional weekday gate from the draw
// settings restricts which days qualify at all.
func (s *Scheduler) drawDue(ctx context.Context) (bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, err
	}

	now := s.now()
	if settings.DayOfWeek != nil && int(now.Weekday()) != *settings.DayOfWeek {
		return false, nil
	}

	last, err := s.drawRepo.FindLatest(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return now.Sub(last.DrawDate) >= settings.Cadence(), nil
}
