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

// ParticipantRepository implements the repositories.ParticipantRepository interface
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	now := time.Now()
	participant.AddedAt = now
	participant.CreatedAt = now
	participant.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, participant)
	if err != nil {
		return err
	}
	participant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a participant by ID
func (r *ParticipantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByChatID finds a participant by their external messenger handle
func (r *ParticipantRepository) FindByChatID(ctx context.Context, chatID string) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"chatId": chatID}).Decode(&participant)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindAll finds all participants
func (r *ParticipantRepository) FindAll(ctx context.Context) ([]*models.Participant, error) {
	return r.find(ctx, bson.M{})
}

// FindActive finds all active participants
func (r *ParticipantRepository) FindActive(ctx context.Context) ([]*models.Participant, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *ParticipantRepository) find(ctx context.Context, filter bson.M) ([]*models.Participant, error) {
	opts := options.Find().SetSort(bson.M{"addedAt": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []*models.Participant{}
	}
	return participants, nil
}

// Update updates a participant
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	participant.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": participant.ID}, participant)
	return err
}

// SetActive flips the active flag for a participant
func (r *ParticipantRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	update := bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// SetAdmin flips the admin flag for a participant
func (r *ParticipantRepository) SetAdmin(ctx context.Context, id primitive.ObjectID, admin bool) error {
	update := bson.M{"$set": bson.M{"admin": admin, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Count counts participants
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
