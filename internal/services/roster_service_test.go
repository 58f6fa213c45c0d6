package services

import (
	"context"
	"testing"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCadence = 7 * 24 * time.Hour

func newRoster(participants ...*models.Participant) (*RosterService, *fakeParticipantRepo, *fakePairRepo, *fakeMessenger) {
	participantRepo := &fakeParticipantRepo{participants: participants}
	pairRepo := &fakePairRepo{}
	msgr := &fakeMessenger{}
	return NewRosterService(participantRepo, pairRepo, msgr, "group-1"), participantRepo, pairRepo, msgr
}

func eligibleChatIDs(t *testing.T, svc *RosterService, now time.Time) []string {
	t.Helper()
	eligible, err := svc.EligibleParticipants(context.Background(), now, testCadence)
	require.NoError(t, err)
	ids := []string{}
	for _, p := range eligible {
		ids = append(ids, p.ChatID)
	}
	return ids
}

func TestEligibleParticipantsSkipsAdmins(t *testing.T) {
	admin := newParticipant("admin")
	admin.Admin = true
	member := newParticipant("member")
	svc, _, _, _ := newRoster(admin, member)

	assert.Equal(t, []string{member.ChatID}, eligibleChatIDs(t, svc, time.Now()))
}

func TestEligibleParticipantsSkipsInactive(t *testing.T) {
	inactive := newParticipant("inactive")
	inactive.Active = false
	member := newParticipant("member")
	svc, _, _, _ := newRoster(inactive, member)

	assert.Equal(t, []string{member.ChatID}, eligibleChatIDs(t, svc, time.Now()))
}

func TestEligibleParticipantsHonorsExclusionWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	paused := newParticipant("paused")
	start := now.AddDate(0, 0, -1)
	end := now.AddDate(0, 0, 5)
	paused.ExcludeStart = &start
	paused.ExcludeEnd = &end

	returned := newParticipant("returned")
	rStart := now.AddDate(0, 0, -10)
	rEnd := now.AddDate(0, 0, -1)
	returned.ExcludeStart = &rStart
	returned.ExcludeEnd = &rEnd

	svc, _, _, _ := newRoster(paused, returned)

	assert.Equal(t, []string{returned.ChatID}, eligibleChatIDs(t, svc, now))
}

func TestExclusionWindowBoundsAreInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := newParticipant("edge")
	p.ExcludeStart = &now
	p.ExcludeEnd = &now
	svc, _, _, _ := newRoster(p)

	assert.Empty(t, eligibleChatIDs(t, svc, now))
}

func TestEligibleParticipantsDeactivatesDeparted(t *testing.T) {
	departed := newParticipant("departed")
	member := newParticipant("member")
	svc, participantRepo, _, msgr := newRoster(departed, member)
	msgr.nonMembers = map[string]bool{departed.ChatID: true}

	assert.Equal(t, []string{member.ChatID}, eligibleChatIDs(t, svc, time.Now()))

	// the departure is persisted immediately, not deferred to draw success
	stored, err := participantRepo.FindByID(context.Background(), departed.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestEligibleParticipantsSkipsOnMembershipError(t *testing.T) {
	member := newParticipant("member")
	svc, participantRepo, _, msgr := newRoster(member)
	msgr.memberErr = assert.AnError

	assert.Empty(t, eligibleChatIDs(t, svc, time.Now()))

	// a transport failure must not deactivate anyone
	stored, err := participantRepo.FindByID(context.Background(), member.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
}

func TestEligibleParticipantsCadenceBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	due := newParticipant("due")
	fresh := newParticipant("fresh")
	svc, _, pairRepo, _ := newRoster(due, fresh)

	// exactly one whole cadence elapsed: due. Slightly less: not due.
	pairRepo.pairs = append(pairRepo.pairs,
		&models.Pair{Participant1ID: due.ID, Participant2ID: newParticipant("x").ID, DrawDate: now.Add(-testCadence)},
		&models.Pair{Participant1ID: fresh.ID, Participant2ID: newParticipant("y").ID, DrawDate: now.Add(-testCadence + time.Hour)},
	)

	assert.Equal(t, []string{due.ChatID}, eligibleChatIDs(t, svc, now))
}

func TestEligibleParticipantsIndividualCadenceMultiplier(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	slow := newParticipant("slow")
	slow.FrequencyIndividual = 2
	svc, _, pairRepo, _ := newRoster(slow)

	pairRepo.pairs = append(pairRepo.pairs, &models.Pair{
		Participant1ID: slow.ID,
		Participant2ID: newParticipant("x").ID,
		DrawDate:       now.Add(-testCadence),
	})

	// one period elapsed, two required
	assert.Empty(t, eligibleChatIDs(t, svc, now))

	pairRepo.pairs[0].DrawDate = now.Add(-2 * testCadence)
	assert.Equal(t, []string{slow.ChatID}, eligibleChatIDs(t, svc, now))
}

func TestEligibleParticipantsNeverPairedIsEligible(t *testing.T) {
	rookie := newParticipant("rookie")
	svc, _, _, _ := newRoster(rookie)

	assert.Equal(t, []string{rookie.ChatID}, eligibleChatIDs(t, svc, time.Now()))
}

func TestSyncAdminsAlignsFlags(t *testing.T) {
	promoted := newParticipant("promoted")
	demoted := newParticipant("demoted")
	demoted.Admin = true
	svc, participantRepo, _, msgr := newRoster(promoted, demoted)
	msgr.admins = []string{promoted.ChatID}

	svc.SyncAdmins(context.Background())

	p, _ := participantRepo.FindByID(context.Background(), promoted.ID)
	d, _ := participantRepo.FindByID(context.Background(), demoted.ID)
	assert.True(t, p.Admin)
	assert.False(t, d.Admin)
}

func TestSyncAdminsKeepsFlagsOnTransportFailure(t *testing.T) {
	admin := newParticipant("admin")
	admin.Admin = true
	svc, participantRepo, _, msgr := newRoster(admin)
	msgr.adminsErr = assert.AnError

	svc.SyncAdmins(context.Background())

	stored, _ := participantRepo.FindByID(context.Background(), admin.ID)
	assert.True(t, stored.Admin)
}
