package services

import (
	"context"
	"fmt"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure FeedbackServiceImpl implements FeedbackService
var _ FeedbackService = (*FeedbackServiceImpl)(nil)

// FeedbackServiceImpl handles feedback capture and the meeting report
type FeedbackServiceImpl struct {
	feedbackRepo    repositories.FeedbackRepository
	drawRepo        repositories.DrawRepository
	pairRepo        repositories.PairRepository
	participantRepo repositories.ParticipantRepository
}

// NewFeedbackService creates a new FeedbackServiceImpl
func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	drawRepo repositories.DrawRepository,
	pairRepo repositories.PairRepository,
	participantRepo repositories.ParticipantRepository,
) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{
		feedbackRepo:    feedbackRepo,
		drawRepo:        drawRepo,
		pairRepo:        pairRepo,
		participantRepo: participantRepo,
	}
}

// SubmitFeedback records a participant's answer for one draw. Answering
// again replaces the previous row.
func (s *FeedbackServiceImpl) SubmitFeedback(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.Feedback, error) {
	drawID, err := primitive.ObjectIDFromHex(req.DrawID)
	if err != nil {
		return nil, fmt.Errorf("invalid draw id: %w", err)
	}
	if _, err := s.drawRepo.FindByID(ctx, drawID); err != nil {
		return nil, fmt.Errorf("draw not found: %w", err)
	}
	participant, err := s.participantRepo.FindByChatID(ctx, req.ChatID)
	if err != nil {
		return nil, fmt.Errorf("participant not found: %w", err)
	}

	feedback := &models.Feedback{
		DrawID:        drawID,
		ParticipantID: participant.ID,
		Success:       req.Success,
		Rating:        req.Rating,
		Comment:       req.Comment,
		SkipReason:    req.SkipReason,
	}
	if err := s.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return feedback, nil
}

// GetFeedbackByDraw retrieves all feedback rows for a draw
func (s *FeedbackServiceImpl) GetFeedbackByDraw(ctx context.Context, drawID primitive.ObjectID) ([]*models.Feedback, error) {
	return s.feedbackRepo.FindByDrawID(ctx, drawID)
}

// BuildMeetingReport flattens the draw/pair/feedback history into one row
// per pair member, oldest draw first. Export formatting (spreadsheets and
// the like) is the consumer's concern.
func (s *FeedbackServiceImpl) BuildMeetingReport(ctx context.Context) ([]*models.MeetingReportRow, error) {
	pairs, err := s.pairRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs: %w", err)
	}
	feedback, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	names := make(map[primitive.ObjectID]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}
	// feedback keyed by (draw, participant)
	answers := make(map[string]*models.Feedback, len(feedback))
	for _, fb := range feedback {
		answers[fb.DrawID.Hex()+"/"+fb.ParticipantID.Hex()] = fb
	}

	rows := make([]*models.MeetingReportRow, 0, len(pairs)*2)
	// pairs come newest first; walk backwards for a chronological report
	for i := len(pairs) - 1; i >= 0; i-- {
		pair := pairs[i]
		members := pair.ParticipantIDs()
		for _, member := range members {
			row := &models.MeetingReportRow{
				DrawDate:        pair.DrawDate,
				PairID:          pair.ID.Hex(),
				ParticipantName: names[member],
			}
			for _, other := range members {
				if other != member {
					row.PartnerNames = append(row.PartnerNames, names[other])
				}
			}
			if fb, ok := answers[pair.DrawID.Hex()+"/"+member.Hex()]; ok {
				row.MeetingHappened = fb.Success
				row.Rating = fb.Rating
				row.Comment = fb.Comment
				row.SkipReason = fb.SkipReason
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
