package repositories

import (
	"context"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParticipantRepository defines the interface for roster data operations
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error)
	FindByChatID(ctx context.Context, chatID string) (*models.Participant, error)
	FindAll(ctx context.Context) ([]*models.Participant, error)
	FindActive(ctx context.Context) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	SetAdmin(ctx context.Context, id primitive.ObjectID, admin bool) error
	Count(ctx context.Context) (int64, error)
}

// CycleRepository defines the interface for cycle data operations
type CycleRepository interface {
	Create(ctx context.Context, cycle *models.Cycle) error
	// FindLatest returns the current cycle: most recent start date, ties
	// broken by highest id. Returns mongo.ErrNoDocuments when none exists.
	FindLatest(ctx context.Context) (*models.Cycle, error)
	FindAll(ctx context.Context) ([]*models.Cycle, error)
}

// DrawRepository defines the interface for draw data operations
type DrawRepository interface {
	// CreateWithPairs persists a draw and all of its pairs as one atomic
	// unit. A draw with zero pairs is rejected, never written.
	CreateWithPairs(ctx context.Context, draw *models.Draw, pairs []*models.Pair) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	// FindLatest returns the most recent draw, or mongo.ErrNoDocuments.
	FindLatest(ctx context.Context) (*models.Draw, error)
	FindAll(ctx context.Context) ([]*models.Draw, error)
	FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Draw, error)
	Count(ctx context.Context) (int64, error)
}

// PairRepository defines the interface for pair data operations
type PairRepository interface {
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Pair, error)
	FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Pair, error)
	FindAll(ctx context.Context) ([]*models.Pair, error)
	// FindLatestByParticipant returns the participant's most recent pair
	// across all cycles, or mongo.ErrNoDocuments if they were never paired.
	FindLatestByParticipant(ctx context.Context, participantID primitive.ObjectID) (*models.Pair, error)
}

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	// Upsert inserts or replaces the (draw, participant) feedback row
	Upsert(ctx context.Context, feedback *models.Feedback) error
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Feedback, error)
	FindAll(ctx context.Context) ([]*models.Feedback, error)
}

// DrawSettingsRepository defines the interface for the draw schedule record
type DrawSettingsRepository interface {
	// Get returns the settings record, creating it with defaults when absent
	Get(ctx context.Context) (*models.DrawSettings, error)
	Update(ctx context.Context, settings *models.DrawSettings) error
	UpdateCadence(ctx context.Context, cadenceDays int, updatedBy string) error
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
