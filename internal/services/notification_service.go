package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/pkg/messenger"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure MessengerNotificationService implements NotificationService
var _ NotificationService = (*MessengerNotificationService)(nil)

// MessengerNotificationService sends pairing notifications over the chat
// transport.
type MessengerNotificationService struct {
	messenger messenger.Client
}

// NewNotificationService creates a new MessengerNotificationService
func NewNotificationService(msgr messenger.Client) *MessengerNotificationService {
	return &MessengerNotificationService{messenger: msgr}
}

// SendPairings sends one message per group member naming the other
// member(s). Every send is independent: a failed delivery is logged and
// the rest of the batch proceeds.
func (s *MessengerNotificationService) SendPairings(ctx context.Context, draw *models.Draw, groups []Group) {
	sent, failed := 0, 0
	for _, group := range groups {
		for _, member := range group.Members {
			text := pairingMessage(member, group)
			if err := s.messenger.SendText(ctx, member.ChatID, text); err != nil {
				failed++
				slog.Warn("failed to deliver pairing notification", "chatId", member.ChatID, "error", err)
				continue
			}
			sent++
		}
	}
	slog.Info("pairing notifications dispatched", "drawId", draw.ID, "sent", sent, "failed", failed)
}

func pairingMessage(member *models.Participant, group Group) string {
	var partners []string
	for _, other := range group.Members {
		if other.ID == member.ID {
			continue
		}
		partners = append(partners, other.Name)
	}
	if len(partners) == 1 {
		return fmt.Sprintf("Time for a random coffee! Your partner this round is %s. Reach out and agree on a time.", partners[0])
	}
	return fmt.Sprintf("Time for a random coffee! You are meeting %s this round. Reach out and agree on a time.", strings.Join(partners, " and "))
}
