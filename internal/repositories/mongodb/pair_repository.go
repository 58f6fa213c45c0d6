package mongodb

import (
	"context"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PairRepository implements the repositories.PairRepository interface
type PairRepository struct {
	collection *mongo.Collection
}

// NewPairRepository creates a new PairRepository
func NewPairRepository(db *mongo.Database) repositories.PairRepository {
	return &PairRepository{
		collection: db.Collection("pairs"),
	}
}

// FindByDrawID finds the pairs produced by one draw
func (r *PairRepository) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Pair, error) {
	return r.find(ctx, bson.M{"drawId": drawID})
}

// FindByCycleID finds all pairs realized within a cycle
func (r *PairRepository) FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Pair, error) {
	return r.find(ctx, bson.M{"cycleId": cycleID})
}

// FindAll finds all pairs across all cycles, newest first
func (r *PairRepository) FindAll(ctx context.Context) ([]*models.Pair, error) {
	return r.find(ctx, bson.M{})
}

// FindLatestByParticipant finds the participant's most recent pair across
// all cycles, in any of the three member slots.
func (r *PairRepository) FindLatestByParticipant(ctx context.Context, participantID primitive.ObjectID) (*models.Pair, error) {
	filter := bson.M{"$or": []bson.M{
		{"participant1Id": participantID},
		{"participant2Id": participantID},
		{"participant3Id": participantID},
	}}
	opts := options.FindOne().SetSort(bson.D{{Key: "drawDate", Value: -1}, {Key: "_id", Value: -1}})

	var pair models.Pair
	err := r.collection.FindOne(ctx, filter, opts).Decode(&pair)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments when never paired
	}
	return &pair, nil
}

func (r *PairRepository) find(ctx context.Context, filter bson.M) ([]*models.Pair, error) {
	opts := options.Find().SetSort(bson.M{"drawDate": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pairs []*models.Pair
	if err := cursor.All(ctx, &pairs); err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []*models.Pair{}
	}
	return pairs, nil
}
