package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"github.com/coffeemate/random-coffee-backend/pkg/messenger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// RosterService produces the subset of the roster eligible for a draw.
type RosterService struct {
	participantRepo repositories.ParticipantRepository
	pairRepo        repositories.PairRepository
	messenger       messenger.Client
	groupID         string
}

// NewRosterService creates a new RosterService
func NewRosterService(
	participantRepo repositories.ParticipantRepository,
	pairRepo repositories.PairRepository,
	msgr messenger.Client,
	groupID string,
) *RosterService {
	return &RosterService{
		participantRepo: participantRepo,
		pairRepo:        pairRepo,
		messenger:       msgr,
		groupID:         groupID,
	}
}

// EligibleParticipants filters the active roster down to the participants
// drawable right now. Conditions short-circuit per participant: roster
// admins are skipped, then exclusion windows, then group membership (a
// departed participant is deactivated immediately, regardless of whether
// the draw goes on to succeed), then individual cadence measured in whole
// elapsed cadence-periods since their last pairing.
func (s *RosterService) EligibleParticipants(ctx context.Context, now time.Time, cadence time.Duration) ([]*models.Participant, error) {
	active, err := s.participantRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active participants: %w", err)
	}

	eligible := make([]*models.Participant, 0, len(active))
	for _, p := range active {
		if p.Admin {
			continue
		}
		if !p.IsAvailable(now) {
			continue
		}

		member, err := s.messenger.IsGroupMember(ctx, s.groupID, p.ChatID)
		if err != nil {
			// transient transport failure: exclude conservatively, keep going
			slog.Warn("membership check failed, skipping participant", "chatId", p.ChatID, "error", err)
			continue
		}
		if !member {
			if err := s.participantRepo.SetActive(ctx, p.ID, false); err != nil {
				slog.Error("failed to deactivate departed participant", "chatId", p.ChatID, "error", err)
			} else {
				slog.Info("participant left the group, deactivated", "chatId", p.ChatID)
			}
			continue
		}

		ok, err := s.cadenceSatisfied(ctx, p, now, cadence)
		if err != nil {
			slog.Warn("cadence lookup failed, skipping participant", "chatId", p.ChatID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		eligible = append(eligible, p)
	}
	return eligible, nil
}

// cadenceSatisfied reports whether enough whole cadence-periods have
// elapsed since the participant's most recent pairing.
func (s *RosterService) cadenceSatisfied(ctx context.Context, p *models.Participant, now time.Time, cadence time.Duration) (bool, error) {
	if p.FrequencyIndividual <= 0 || cadence <= 0 {
		return true, nil
	}
	last, err := s.pairRepo.FindLatestByParticipant(ctx, p.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	elapsedPeriods := int(now.Sub(last.DrawDate) / cadence)
	return elapsedPeriods >= p.FrequencyIndividual, nil
}

// SyncAdmins aligns roster admin flags with the group's moderator list.
// Best-effort: a transport failure leaves the flags untouched.
func (s *RosterService) SyncAdmins(ctx context.Context) {
	adminIDs, err := s.messenger.ListGroupAdmins(ctx, s.groupID)
	if err != nil {
		slog.Warn("failed to list group admins, keeping stored flags", "error", err)
		return
	}
	adminSet := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		adminSet[id] = true
	}

	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		slog.Warn("failed to load participants for admin sync", "error", err)
		return
	}
	for _, p := range participants {
		isAdmin := adminSet[p.ChatID]
		if p.Admin == isAdmin {
			continue
		}
		if err := s.participantRepo.SetAdmin(ctx, p.ID, isAdmin); err != nil {
			slog.Error("failed to update admin flag", "chatId", p.ChatID, "error", err)
		}
	}
}
