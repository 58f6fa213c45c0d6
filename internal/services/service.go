package services

import (
	"context"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawService defines the interface for draw-related operations
type DrawService interface {
	// PerformDraw runs one full draw pass: membership sync, eligibility,
	// cycle resolution, matching, persistence and notification. A roster
	// too small to draw is a normal no-op (nil draw, nil error).
	PerformDraw(ctx context.Context, now time.Time) (*models.Draw, []Group, error)

	GetDrawByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	GetDraws(ctx context.Context) ([]*models.Draw, error)
	GetLatestDraw(ctx context.Context) (*models.Draw, error)
	GetPairsByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Pair, error)
	GetCycles(ctx context.Context) ([]*models.Cycle, error)
	GetCurrentCycle(ctx context.Context) (*models.Cycle, error)
}

// ParticipantService defines the interface for roster management
type ParticipantService interface {
	Register(ctx context.Context, chatID, name string) (*models.Participant, error)
	GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	GetParticipantByChatID(ctx context.Context, chatID string) (*models.Participant, error)
	GetAllParticipants(ctx context.Context) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, participant *models.Participant) error
	Pause(ctx context.Context, id primitive.ObjectID, start, end time.Time) error
	SetIndividualCadence(ctx context.Context, id primitive.ObjectID, periods int) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

// FeedbackService defines the interface for feedback capture and reporting
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.Feedback, error)
	GetFeedbackByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Feedback, error)
	BuildMeetingReport(ctx context.Context) ([]*models.MeetingReportRow, error)
}

// SettingsService defines the interface for the draw schedule settings
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.DrawSettings, error)
	UpdateSettings(ctx context.Context, settings *models.DrawSettings) error
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // returns JWT
}

// NotificationService defines the interface for pairing notifications
type NotificationService interface {
	// SendPairings notifies every member of every group. Best-effort: a
	// delivery failure for one recipient never blocks the others.
	SendPairings(ctx context.Context, draw *models.Draw, groups []Group)
}
