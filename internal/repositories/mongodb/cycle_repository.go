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

// CycleRepository implements the repositories.CycleRepository interface
type CycleRepository struct {
	collection *mongo.Collection
}

// NewCycleRepository creates a new CycleRepository
func NewCycleRepository(db *mongo.Database) repositories.CycleRepository {
	return &CycleRepository{
		collection: db.Collection("cycles"),
	}
}

// Create creates a new cycle
func (r *CycleRepository) Create(ctx context.Context, cycle *models.Cycle) error {
	cycle.CreatedAt = time.Now()
	cycle.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, cycle)
	if err != nil {
		return err
	}
	cycle.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindLatest finds the current cycle. Most recent start date wins, ties are
// broken by highest id so resolution never depends on storage ordering.
func (r *CycleRepository) FindLatest(ctx context.Context) (*models.Cycle, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "_id", Value: -1}})
	var cycle models.Cycle
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&cycle)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments when no cycle exists yet
	}
	return &cycle, nil
}

// FindAll finds all cycles, newest first
func (r *CycleRepository) FindAll(ctx context.Context) ([]*models.Cycle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cycles []*models.Cycle
	if err := cursor.All(ctx, &cycles); err != nil {
		return nil, err
	}
	if cycles == nil {
		cycles = []*models.Cycle{}
	}
	return cycles, nil
}
