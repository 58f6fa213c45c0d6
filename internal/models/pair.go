package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pair is an unordered group of two (normally) or three (odd-roster
// overflow) participants produced by one draw. CycleID and DrawDate are
// denormalized from the owning draw so that cycle history and per-participant
// recency queries never need a join.
type Pair struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	DrawID         primitive.ObjectID  `bson:"drawId" json:"drawId"`
	CycleID        primitive.ObjectID  `bson:"cycleId" json:"cycleId"`
	DrawDate       time.Time           `bson:"drawDate" json:"drawDate"`
	Participant1ID primitive.ObjectID  `bson:"participant1Id" json:"participant1Id"`
	Participant2ID primitive.ObjectID  `bson:"participant2Id" json:"participant2Id"`
	Participant3ID *primitive.ObjectID `bson:"participant3Id,omitempty" json:"participant3Id,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// ParticipantIDs returns the two or three member ids of the pair.
func (p *Pair) ParticipantIDs() []primitive.ObjectID {
	ids := []primitive.ObjectID{p.Participant1ID, p.Participant2ID}
	if p.Participant3ID != nil {
		ids = append(ids, *p.Participant3ID)
	}
	return ids
}

// Contains reports whether the pair includes the given participant.
func (p *Pair) Contains(id primitive.ObjectID) bool {
	for _, member := range p.ParticipantIDs() {
		if member == id {
			return true
		}
	}
	return false
}
