package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ParticipantServiceImpl implements ParticipantService
var _ ParticipantService = (*ParticipantServiceImpl)(nil)

// ParticipantServiceImpl handles roster management
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
}

// NewParticipantService creates a new ParticipantServiceImpl
func NewParticipantService(participantRepo repositories.ParticipantRepository) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{participantRepo: participantRepo}
}

// Register creates a participant on first interaction or reactivates an
// existing one who opted back in.
func (s *ParticipantServiceImpl) Register(ctx context.Context, chatID, name string) (*models.Participant, error) {
	existing, err := s.participantRepo.FindByChatID(ctx, chatID)
	if err == nil {
		if !existing.Active {
			if err := s.participantRepo.SetActive(ctx, existing.ID, true); err != nil {
				return nil, fmt.Errorf("failed to reactivate participant: %w", err)
			}
			existing.Active = true
			slog.Info("participant reactivated", "chatId", chatID)
		}
		return existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	participant := &models.Participant{
		ChatID:              chatID,
		Name:                name,
		Active:              true,
		FrequencyIndividual: 1,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	slog.Info("participant registered", "chatId", chatID, "name", name)
	return participant, nil
}

// GetParticipantByID retrieves a participant by id
func (s *ParticipantServiceImpl) GetParticipantByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	return s.participantRepo.FindByID(ctx, id)
}

// GetParticipantByChatID retrieves a participant by messenger handle
func (s *ParticipantServiceImpl) GetParticipantByChatID(ctx context.Context, chatID string) (*models.Participant, error) {
	return s.participantRepo.FindByChatID(ctx, chatID)
}

// GetAllParticipants retrieves the full roster
func (s *ParticipantServiceImpl) GetAllParticipants(ctx context.Context) ([]*models.Participant, error) {
	return s.participantRepo.FindAll(ctx)
}

// UpdateParticipant updates a participant record
func (s *ParticipantServiceImpl) UpdateParticipant(ctx context.Context, participant *models.Participant) error {
	return s.participantRepo.Update(ctx, participant)
}

// Pause sets an exclusion window during which the participant is never
// drawn, regardless of activity or cadence.
func (s *ParticipantServiceImpl) Pause(ctx context.Context, id primitive.ObjectID, start, end time.Time) error {
	if end.Before(start) {
		return errors.New("exclusion window end precedes start")
	}
	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("participant not found: %w", err)
	}
	participant.ExcludeStart = &start
	participant.ExcludeEnd = &end
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return fmt.Errorf("failed to set exclusion window: %w", err)
	}
	slog.Info("participant paused", "chatId", participant.ChatID, "from", start, "until", end)
	return nil
}

// SetIndividualCadence updates the minimum number of cadence-periods
// between draws that include this participant.
func (s *ParticipantServiceImpl) SetIndividualCadence(ctx context.Context, id primitive.ObjectID, periods int) error {
	if periods < 1 {
		return errors.New("individual cadence must be at least 1")
	}
	participant, err := s.participantRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("participant not found: %w", err)
	}
	participant.FrequencyIndividual = periods
	return s.participantRepo.Update(ctx, participant)
}

// Deactivate removes a participant from the drawable roster. History is
// preserved: pairs and feedback keep referencing the record.
func (s *ParticipantServiceImpl) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	if err := s.participantRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate participant: %w", err)
	}
	return nil
}
