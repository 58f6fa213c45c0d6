package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a participant's response to a specific draw. One row per
// (draw, participant), created lazily when the participant answers and
// replaced if they answer again.
type Feedback struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawID        primitive.ObjectID `bson:"drawId" json:"drawId"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	Success       *bool              `bson:"success,omitempty" json:"success,omitempty"` // did the meeting happen
	Rating        *bool              `bson:"rating,omitempty" json:"rating,omitempty"`   // thumbs up / down
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`
	SkipReason    string             `bson:"skipReason,omitempty" json:"skipReason,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubmitFeedbackRequest is the payload for the public feedback endpoint.
type SubmitFeedbackRequest struct {
	DrawID     string `json:"drawId" binding:"required"`
	ChatID     string `json:"chatId" binding:"required"`
	Success    *bool  `json:"success"`
	Rating     *bool  `json:"rating"`
	Comment    string `json:"comment"`
	SkipReason string `json:"skipReason"`
}

// MeetingReportRow is one flattened draw/pair/feedback row, one per pair
// member, as consumed by the report export.
type MeetingReportRow struct {
	DrawDate        time.Time `json:"drawDate"`
	PairID          string    `json:"pairId"`
	ParticipantName string    `json:"participantName"`
	PartnerNames    []string  `json:"partnerNames"`
	MeetingHappened *bool     `json:"meetingHappened,omitempty"`
	Rating          *bool     `json:"rating,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	SkipReason      string    `json:"skipReason,omitempty"`
}
