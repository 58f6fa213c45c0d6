package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is one member of the coffee roster. ChatID is the member's id
// in the group chat the roster is drawn from; deactivation (Active=false)
// removes them from future draws without touching their pair history.
type Participant struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ChatID              string             `bson:"chatId" json:"chatId"`
	Name                string             `bson:"name" json:"name"`
	Admin               bool               `bson:"admin" json:"admin"` // group moderators sit out of draws
	Active              bool               `bson:"active" json:"active"`
	FrequencyIndividual int                `bson:"frequencyIndividual" json:"frequencyIndividual"` // cadence-periods between this member's pairings
	ExcludeStart        *time.Time         `bson:"excludeStart,omitempty" json:"excludeStart,omitempty"`
	ExcludeEnd          *time.Time         `bson:"excludeEnd,omitempty" json:"excludeEnd,omitempty"`
	AddedAt             time.Time          `bson:"addedAt" json:"addedAt"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAvailable reports whether the participant's exclusion window, if any,
// does not cover checkDate. Both window bounds are inclusive.
func (p *Participant) IsAvailable(checkDate time.Time) bool {
	if p.ExcludeStart == nil || p.ExcludeEnd == nil {
		return true
	}
	if checkDate.Before(*p.ExcludeStart) || checkDate.After(*p.ExcludeEnd) {
		return true
	}
	return false
}
