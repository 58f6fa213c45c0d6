package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl orchestrates one draw pass and serves draw queries for
// the HTTP surface.
type DrawServiceImpl struct {
	drawRepo     repositories.DrawRepository
	pairRepo     repositories.PairRepository
	cycleRepo    repositories.CycleRepository
	settingsRepo repositories.DrawSettingsRepository
	roster       *RosterService
	cycles       *CycleService
	notifier     NotificationService
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	drawRepo repositories.DrawRepository,
	pairRepo repositories.PairRepository,
	cycleRepo repositories.CycleRepository,
	settingsRepo repositories.DrawSettingsRepository,
	roster *RosterService,
	cycles *CycleService,
	notifier NotificationService,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:     drawRepo,
		pairRepo:     pairRepo,
		cycleRepo:    cycleRepo,
		settingsRepo: settingsRepo,
		roster:       roster,
		cycles:       cycles,
		notifier:     notifier,
	}
}

// PerformDraw executes one full draw pass. Returns (nil, nil, nil) when the
// eligible roster is too small or constrained matching plus fallback still
// produced nothing; a persistence failure is the only error path, and it
// leaves no partial state behind (draw and pairs commit atomically).
func (s *DrawServiceImpl) PerformDraw(ctx context.Context, now time.Time) (*models.Draw, []Group, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load draw settings: %w", err)
	}

	s.roster.SyncAdmins(ctx)

	eligible, err := s.roster.EligibleParticipants(ctx, now, settings.Cadence())
	if err != nil {
		return nil, nil, err
	}
	if len(eligible) < 2 {
		slog.Info("not enough eligible participants for a draw", "eligible", len(eligible))
		return nil, nil, nil
	}

	cycle, err := s.cycles.CurrentCycle(ctx, eligible, now)
	if err != nil {
		return nil, nil, err
	}

	cyclePairs, err := s.pairRepo.FindByCycleID(ctx, cycle.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cycle pair history: %w", err)
	}
	forbidden := PairKeys(cyclePairs, nil)

	groups, fallback := MatchWithFallback(eligible, forbidden)
	if len(groups) == 0 {
		slog.Info("matcher produced no groups, skipping draw", "eligible", len(eligible))
		return nil, nil, nil
	}
	if fallback {
		slog.Warn("constrained matching found nothing, fallback pass allowed a repeat pairing",
			"cycleId", cycle.ID, "eligible", len(eligible))
	}

	draw := &models.Draw{
		DrawDate: now,
		CycleID:  cycle.ID,
		Fallback: fallback,
	}
	pairs := groupsToPairs(groups)
	if err := s.drawRepo.CreateWithPairs(ctx, draw, pairs); err != nil {
		return nil, nil, fmt.Errorf("failed to persist draw: %w", err)
	}

	unmatched := len(eligible) - matchedCount(groups)
	slog.Info("draw completed",
		"drawId", draw.ID,
		"cycleId", cycle.ID,
		"pairs", len(groups),
		"unmatched", unmatched,
		"fallback", fallback)

	s.notifier.SendPairings(ctx, draw, groups)
	return draw, groups, nil
}

func groupsToPairs(groups []Group) []*models.Pair {
	pairs := make([]*models.Pair, 0, len(groups))
	for _, g := range groups {
		pair := &models.Pair{
			Participant1ID: g.Members[0].ID,
			Participant2ID: g.Members[1].ID,
		}
		if len(g.Members) == 3 {
			third := g.Members[2].ID
			pair.Participant3ID = &third
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func matchedCount(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Members)
	}
	return n
}

// GetDrawByID retrieves a draw by id
func (s *DrawServiceImpl) GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve draw: %w", err)
	}
	return draw, nil
}

// GetDraws retrieves all draws, newest first
func (s *DrawServiceImpl) GetDraws(ctx context.Context) ([]*models.Draw, error) {
	return s.drawRepo.FindAll(ctx)
}

// GetLatestDraw retrieves the most recent draw
func (s *DrawServiceImpl) GetLatestDraw(ctx context.Context) (*models.Draw, error) {
	return s.drawRepo.FindLatest(ctx)
}

// GetPairsByDrawID retrieves the pairs of one draw
func (s *DrawServiceImpl) GetPairsByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Pair, error) {
	return s.pairRepo.FindByDrawID(ctx, drawID)
}

// GetCycles retrieves all cycles, newest first
func (s *DrawServiceImpl) GetCycles(ctx context.Context) ([]*models.Cycle, error) {
	return s.cycleRepo.FindAll(ctx)
}

// GetCurrentCycle retrieves the most recent cycle
func (s *DrawServiceImpl) GetCurrentCycle(ctx context.Context) (*models.Cycle, error) {
	return s.cycleRepo.FindLatest(ctx)
}
