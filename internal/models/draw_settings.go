package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawSettings holds the admin-tunable draw schedule: the global cadence
// between draws and an optional weekday gate. A single record exists; it is
// created lazily from configuration defaults.
type DrawSettings struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CadenceDays int                `bson:"cadenceDays" json:"cadenceDays"`
	DayOfWeek   *int               `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // 0 = Sunday; nil = any day
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Cadence returns the configured gap between draws as a duration.
func (s *DrawSettings) Cadence() time.Duration {
	return time.Duration(s.CadenceDays) * 24 * time.Hour
}
