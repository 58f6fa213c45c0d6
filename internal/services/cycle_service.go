package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// CycleService decides when the active cycle is exhausted and a new one
// must be opened. Without the rollover a shrinking or static roster would
// eventually have no legal pairs left and every draw would land on the
// unconstrained fallback.
type CycleService struct {
	cycleRepo repositories.CycleRepository
	pairRepo  repositories.PairRepository
	threshold float64
}

// NewCycleService creates a new CycleService
func NewCycleService(cycleRepo repositories.CycleRepository, pairRepo repositories.PairRepository, threshold float64) *CycleService {
	return &CycleService{
		cycleRepo: cycleRepo,
		pairRepo:  pairRepo,
		threshold: threshold,
	}
}

// CurrentCycle returns the cycle the next draw belongs to. The first call
// ever creates the first cycle. A new cycle is opened once the fraction of
// realized pairs among the current eligible participants reaches the
// threshold; pairs involving participants who are no longer eligible count
// for neither numerator nor denominator.
func (s *CycleService) CurrentCycle(ctx context.Context, eligible []*models.Participant, now time.Time) (*models.Cycle, error) {
	current, err := s.cycleRepo.FindLatest(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		cycle := &models.Cycle{StartDate: now}
		if err := s.cycleRepo.Create(ctx, cycle); err != nil {
			return nil, fmt.Errorf("failed to create first cycle: %w", err)
		}
		slog.Info("opened first cycle", "cycleId", cycle.ID, "startDate", now)
		return cycle, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current cycle: %w", err)
	}

	n := len(eligible)
	if n < 2 {
		return current, nil
	}
	totalPossible := n * (n - 1) / 2

	pairs, err := s.pairRepo.FindByCycleID(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cycle pair history: %w", err)
	}

	eligibleSet := make(map[string]bool, n)
	for _, p := range eligible {
		eligibleSet[p.ID.Hex()] = true
	}
	realized := PairKeys(pairs, eligibleSet)

	fraction := float64(len(realized)) / float64(totalPossible)
	if fraction < s.threshold {
		return current, nil
	}

	cycle := &models.Cycle{StartDate: now}
	if err := s.cycleRepo.Create(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to open new cycle: %w", err)
	}
	slog.Info("cycle exhausted, opened new cycle",
		"previousCycleId", current.ID,
		"cycleId", cycle.ID,
		"realizedPairs", len(realized),
		"possiblePairs", totalPossible,
		"threshold", s.threshold)
	return cycle, nil
}
