package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cycle is one round of the everyone-meets-everyone rotation. Pairings are
// forbidden to repeat within a cycle; once enough of the possible pairs have
// been realized a new cycle starts and the slate is wiped.
type Cycle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
