package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draw represents one execution of the pairing algorithm. A draw is only
// persisted when it produced at least one pair, so the latest draw row is
// always a usable "last drawn" marker.
type Draw struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawDate  time.Time          `bson:"drawDate" json:"drawDate"`
	CycleID   primitive.ObjectID `bson:"cycleId" json:"cycleId"`
	NumPairs  int                `bson:"numPairs" json:"numPairs"`
	Fallback  bool               `bson:"fallback" json:"fallback"` // true when the unconstrained matcher pass was needed
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
