package services

import (
	"math/rand"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/utils"
)

// Group is one proposed meeting of two or three participants.
type Group struct {
	Members []*models.Participant
}

// PairSet is a set of canonical unordered pair keys (see utils.PairKey).
type PairSet map[string]struct{}

// Has reports whether the unordered (a, b) pair is in the set.
func (s PairSet) Has(a, b string) bool {
	_, ok := s[utils.PairKey(a, b)]
	return ok
}

// Add inserts the unordered (a, b) pair.
func (s PairSet) Add(a, b string) {
	s[utils.PairKey(a, b)] = struct{}{}
}

// PairKeys projects persisted pairs onto unordered 2-element id
// combinations (a triple contributes three). When eligible is non-nil,
// combinations involving a participant outside it are dropped; that keeps
// departed participants out of cycle accounting.
func PairKeys(pairs []*models.Pair, eligible map[string]bool) PairSet {
	keys := make(PairSet)
	for _, pair := range pairs {
		ids := pair.ParticipantIDs()
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i].Hex(), ids[j].Hex()
				if eligible != nil && (!eligible[a] || !eligible[b]) {
					continue
				}
				keys.Add(a, b)
			}
		}
	}
	return keys
}

// MatchGroups builds a randomized near-perfect matching over the given
// participants that avoids every pair in forbidden. Greedy random
// construction, not optimal matching: shuffle, then repeatedly commit a
// random compatible partner for the next unmatched participant. Leftovers
// are folded into an existing pair as a third member when that introduces
// no forbidden conflict; otherwise they stay unmatched for this draw.
func MatchGroups(participants []*models.Participant, forbidden PairSet) []Group {
	pool := make([]*models.Participant, len(participants))
	copy(pool, participants)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	matched := make(map[string]bool, len(pool))
	var groups []Group

	for i, p := range pool {
		if matched[p.ID.Hex()] {
			continue
		}
		var candidates []*models.Participant
		for j := i + 1; j < len(pool); j++ {
			q := pool[j]
			if matched[q.ID.Hex()] {
				continue
			}
			if forbidden.Has(p.ID.Hex(), q.ID.Hex()) {
				continue
			}
			candidates = append(candidates, q)
		}
		if len(candidates) == 0 {
			// left aside, may still join a triple below
			continue
		}
		q := candidates[rand.Intn(len(candidates))]
		matched[p.ID.Hex()] = true
		matched[q.ID.Hex()] = true
		groups = append(groups, Group{Members: []*models.Participant{p, q}})
	}

	for _, p := range pool {
		if matched[p.ID.Hex()] {
			continue
		}
		var hosts []int
		for gi := range groups {
			g := &groups[gi]
			if len(g.Members) != 2 {
				continue
			}
			if forbidden.Has(p.ID.Hex(), g.Members[0].ID.Hex()) ||
				forbidden.Has(p.ID.Hex(), g.Members[1].ID.Hex()) {
				continue
			}
			hosts = append(hosts, gi)
		}
		if len(hosts) == 0 {
			continue // no meeting for this participant this draw
		}
		gi := hosts[rand.Intn(len(hosts))]
		groups[gi].Members = append(groups[gi].Members, p)
		matched[p.ID.Hex()] = true
	}

	return groups
}

// MatchWithFallback runs the constrained matcher and, when it yields
// nothing at all, reruns without the forbidden set so that any roster of
// two or more always gets at least one group. The second return value
// reports whether the fallback pass was taken.
func MatchWithFallback(participants []*models.Participant, forbidden PairSet) ([]Group, bool) {
	if len(participants) < 2 {
		return nil, false
	}
	groups := MatchGroups(participants, forbidden)
	if len(groups) > 0 {
		return groups, false
	}
	return MatchGroups(participants, nil), true
}
