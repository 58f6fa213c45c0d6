package services

import (
	"testing"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(n int) []*models.Participant {
	out := make([]*models.Participant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, newParticipant(string(rune('a'+i))))
	}
	return out
}

func memberIDs(groups []Group) map[string]int {
	seen := map[string]int{}
	for _, g := range groups {
		for _, m := range g.Members {
			seen[m.ID.Hex()]++
		}
	}
	return seen
}

func TestMatchGroupsEvenRoster(t *testing.T) {
	for i := 0; i < 50; i++ {
		participants := roster(4)
		groups := MatchGroups(participants, PairSet{})

		require.Len(t, groups, 2)
		for _, g := range groups {
			assert.Len(t, g.Members, 2)
		}
		for id, count := range memberIDs(groups) {
			assert.Equal(t, 1, count, "participant %s appears more than once", id)
		}
	}
}

func TestMatchGroupsOddRosterFoldsThird(t *testing.T) {
	for i := 0; i < 50; i++ {
		participants := roster(5)
		groups := MatchGroups(participants, PairSet{})

		// two groups, one of them a triple: nobody left out when unconstrained
		require.Len(t, groups, 2)
		total := 0
		for _, g := range groups {
			assert.Contains(t, []int{2, 3}, len(g.Members))
			total += len(g.Members)
		}
		assert.Equal(t, 5, total)
	}
}

func TestMatchGroupsAvoidsForbiddenPairs(t *testing.T) {
	participants := roster(4)
	a, b, c, d := participants[0], participants[1], participants[2], participants[3]

	// only legal pairings left: a-c/b-d or a-d/b-c
	forbidden := PairSet{}
	forbidden.Add(a.ID.Hex(), b.ID.Hex())
	forbidden.Add(c.ID.Hex(), d.ID.Hex())

	for i := 0; i < 50; i++ {
		groups := MatchGroups(participants, forbidden)
		for _, g := range groups {
			for x := 0; x < len(g.Members); x++ {
				for y := x + 1; y < len(g.Members); y++ {
					assert.False(t, forbidden.Has(g.Members[x].ID.Hex(), g.Members[y].ID.Hex()),
						"forbidden pair was produced")
				}
			}
		}
	}
}

func TestMatchGroupsFullyForbiddenYieldsNothing(t *testing.T) {
	participants := roster(2)
	forbidden := PairSet{}
	forbidden.Add(participants[0].ID.Hex(), participants[1].ID.Hex())

	groups := MatchGroups(participants, forbidden)
	assert.Empty(t, groups)
}

func TestMatchGroupsTripleRespectsForbidden(t *testing.T) {
	participants := roster(3)
	a, b, c := participants[0], participants[1], participants[2]

	// c may not meet either a or b, so c must stay unmatched
	forbidden := PairSet{}
	forbidden.Add(a.ID.Hex(), c.ID.Hex())
	forbidden.Add(b.ID.Hex(), c.ID.Hex())

	for i := 0; i < 50; i++ {
		groups := MatchGroups(participants, forbidden)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Members, 2)
		assert.False(t, groups[0].Members[0].ID == c.ID || groups[0].Members[1].ID == c.ID)
	}
}

func TestMatchWithFallbackRerunsUnconstrained(t *testing.T) {
	participants := roster(2)
	forbidden := PairSet{}
	forbidden.Add(participants[0].ID.Hex(), participants[1].ID.Hex())

	groups, fallback := MatchWithFallback(participants, forbidden)

	require.Len(t, groups, 1)
	assert.True(t, fallback)
	assert.Len(t, groups[0].Members, 2)
}

func TestMatchWithFallbackNotTakenWhenConstrainedSucceeds(t *testing.T) {
	groups, fallback := MatchWithFallback(roster(4), PairSet{})

	assert.NotEmpty(t, groups)
	assert.False(t, fallback)
}

func TestMatchWithFallbackTooFewParticipants(t *testing.T) {
	groups, fallback := MatchWithFallback(roster(1), PairSet{})
	assert.Nil(t, groups)
	assert.False(t, fallback)

	groups, fallback = MatchWithFallback(nil, PairSet{})
	assert.Nil(t, groups)
	assert.False(t, fallback)
}

func TestPairKeysProjectsTriples(t *testing.T) {
	a, b, c := newParticipant("a"), newParticipant("b"), newParticipant("c")
	third := c.ID
	pairs := []*models.Pair{{
		Participant1ID: a.ID,
		Participant2ID: b.ID,
		Participant3ID: &third,
	}}

	keys := PairKeys(pairs, nil)

	assert.Len(t, keys, 3)
	assert.True(t, keys.Has(a.ID.Hex(), b.ID.Hex()))
	assert.True(t, keys.Has(a.ID.Hex(), c.ID.Hex()))
	assert.True(t, keys.Has(b.ID.Hex(), c.ID.Hex()))
}

func TestPairKeysFiltersByEligibleSet(t *testing.T) {
	a, b, c := newParticipant("a"), newParticipant("b"), newParticipant("c")
	pairs := []*models.Pair{
		{Participant1ID: a.ID, Participant2ID: b.ID},
		{Participant1ID: a.ID, Participant2ID: c.ID},
	}
	eligible := map[string]bool{a.ID.Hex(): true, b.ID.Hex(): true}

	keys := PairKeys(pairs, eligible)

	assert.Len(t, keys, 1)
	assert.True(t, keys.Has(a.ID.Hex(), b.ID.Hex()))
	assert.False(t, keys.Has(a.ID.Hex(), c.ID.Hex()))
}

func TestPairSetIsUnordered(t *testing.T) {
	s := PairSet{}
	s.Add("x", "y")
	assert.True(t, s.Has("y", "x"))
}
