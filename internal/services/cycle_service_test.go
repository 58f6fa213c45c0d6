package services

import (
	"context"
	"testing"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentCycleCreatesFirstCycle(t *testing.T) {
	cycleRepo := &fakeCycleRepo{}
	svc := NewCycleService(cycleRepo, &fakePairRepo{}, 0.9)

	cycle, err := svc.CurrentCycle(context.Background(), roster(3), time.Now())

	require.NoError(t, err)
	require.NotNil(t, cycle)
	assert.False(t, cycle.ID.IsZero())
	assert.Len(t, cycleRepo.cycles, 1)
}

func TestCurrentCycleKeepsUnexhaustedCycle(t *testing.T) {
	participants := roster(3)
	a, b := participants[0], participants[1]

	cycleRepo := &fakeCycleRepo{}
	pairRepo := &fakePairRepo{}
	svc := NewCycleService(cycleRepo, pairRepo, 0.9)

	ctx := context.Background()
	first, err := svc.CurrentCycle(ctx, participants, time.Now())
	require.NoError(t, err)

	// 1 of 3 possible pairs realized, well under the threshold
	pairRepo.pairs = append(pairRepo.pairs, &models.Pair{
		CycleID:        first.ID,
		Participant1ID: a.ID,
		Participant2ID: b.ID,
	})

	current, err := svc.CurrentCycle(ctx, participants, time.Now())
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}

func TestCurrentCycleRollsOverAtThreshold(t *testing.T) {
	participants := roster(2)
	a, b := participants[0], participants[1]

	cycleRepo := &fakeCycleRepo{}
	pairRepo := &fakePairRepo{}
	svc := NewCycleService(cycleRepo, pairRepo, 0.9)

	ctx := context.Background()
	first, err := svc.CurrentCycle(ctx, participants, time.Now())
	require.NoError(t, err)

	// the only possible pair is realized: fraction 1.0 >= 0.9
	pairRepo.pairs = append(pairRepo.pairs, &models.Pair{
		CycleID:        first.ID,
		Participant1ID: a.ID,
		Participant2ID: b.ID,
	})

	current, err := svc.CurrentCycle(ctx, participants, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, current.ID)
	assert.Len(t, cycleRepo.cycles, 2)
}

func TestCurrentCycleIgnoresDepartedParticipants(t *testing.T) {
	participants := roster(3)
	a, b, departed := participants[0], participants[1], participants[2]
	eligible := []*models.Participant{a, b}

	cycleRepo := &fakeCycleRepo{}
	pairRepo := &fakePairRepo{}
	svc := NewCycleService(cycleRepo, pairRepo, 0.9)

	ctx := context.Background()
	first, err := svc.CurrentCycle(ctx, eligible, time.Now())
	require.NoError(t, err)

	// both historical pairs involve the departed member: with them out of
	// the roster, the fraction must be 0/1, not 2/3
	pairRepo.pairs = append(pairRepo.pairs,
		&models.Pair{CycleID: first.ID, Participant1ID: a.ID, Participant2ID: departed.ID},
		&models.Pair{CycleID: first.ID, Participant1ID: b.ID, Participant2ID: departed.ID},
	)

	current, err := svc.CurrentCycle(ctx, eligible, time.Now())
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}

func TestCurrentCycleTinyRosterNeverRolls(t *testing.T) {
	cycleRepo := &fakeCycleRepo{}
	svc := NewCycleService(cycleRepo, &fakePairRepo{}, 0.9)

	ctx := context.Background()
	first, err := svc.CurrentCycle(ctx, nil, time.Now())
	require.NoError(t, err)

	current, err := svc.CurrentCycle(ctx, roster(1), time.Now())
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}
