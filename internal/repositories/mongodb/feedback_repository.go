package mongodb

import (
	"context"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository implements the repositories.FeedbackRepository interface
type FeedbackRepository struct {
	collection *mongo.Collection
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *mongo.Database) repositories.FeedbackRepository {
	return &FeedbackRepository{
		collection: db.Collection("feedback"),
	}
}

// Upsert inserts or replaces the feedback row for (draw, participant)
func (r *FeedbackRepository) Upsert(ctx context.Context, feedback *models.Feedback) error {
	now := time.Now()
	feedback.UpdatedAt = now
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now
	}

	filter := bson.M{
		"drawId":        feedback.DrawID,
		"participantId": feedback.ParticipantID,
	}
	update := bson.M{"$set": bson.M{
		"drawId":        feedback.DrawID,
		"participantId": feedback.ParticipantID,
		"success":       feedback.Success,
		"rating":        feedback.Rating,
		"comment":       feedback.Comment,
		"skipReason":    feedback.SkipReason,
		"updatedAt":     feedback.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"createdAt": feedback.CreatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	res, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if res.UpsertedID != nil {
		feedback.ID = res.UpsertedID.(primitive.ObjectID)
	}
	return nil
}

// FindByDrawID finds all feedback rows for a draw
func (r *FeedbackRepository) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Feedback, error) {
	return r.find(ctx, bson.M{"drawId": drawID})
}

// FindAll finds all feedback rows
func (r *FeedbackRepository) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	return r.find(ctx, bson.M{})
}

func (r *FeedbackRepository) find(ctx context.Context, filter bson.M) ([]*models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedback []*models.Feedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	if feedback == nil {
		feedback = []*models.Feedback{}
	}
	return feedback, nil
}
