package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawRepository implements the repositories.DrawRepository interface. It
// owns both the draws and pairs collections because a draw and its pairs
// are written as one transaction.
type DrawRepository struct {
	client *mongo.Client
	draws  *mongo.Collection
	pairs  *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		client: db.Client(),
		draws:  db.Collection("draws"),
		pairs:  db.Collection("pairs"),
	}
}

// CreateWithPairs persists a draw and its pairs atomically. A crash can
// never leave an orphan draw that the scheduler would mistake for "already
// drawn": either everything commits or nothing does.
func (r *DrawRepository) CreateWithPairs(ctx context.Context, draw *models.Draw, pairs []*models.Pair) error {
	if len(pairs) == 0 {
		return errors.New("refusing to persist a draw with no pairs")
	}

	now := time.Now()
	draw.NumPairs = len(pairs)
	draw.CreatedAt = now
	draw.UpdatedAt = now

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.draws.InsertOne(sc, draw)
		if err != nil {
			return nil, err
		}
		draw.ID = res.InsertedID.(primitive.ObjectID)

		docs := make([]interface{}, 0, len(pairs))
		for _, pair := range pairs {
			pair.DrawID = draw.ID
			pair.CycleID = draw.CycleID
			pair.DrawDate = draw.DrawDate
			pair.CreatedAt = now
			docs = append(docs, pair)
		}
		if _, err := r.pairs.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// FindByID finds a draw by ID
func (r *DrawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	var draw models.Draw
	err := r.draws.FindOne(ctx, bson.M{"_id": id}).Decode(&draw)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindLatest finds the most recent draw
func (r *DrawRepository) FindLatest(ctx context.Context) (*models.Draw, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "drawDate", Value: -1}, {Key: "_id", Value: -1}})
	var draw models.Draw
	err := r.draws.FindOne(ctx, bson.M{}, opts).Decode(&draw)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments before the first draw
	}
	return &draw, nil
}

// FindAll finds all draws, newest first
func (r *DrawRepository) FindAll(ctx context.Context) ([]*models.Draw, error) {
	return r.find(ctx, bson.M{})
}

// FindByCycleID finds the draws belonging to a cycle
func (r *DrawRepository) FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Draw, error) {
	return r.find(ctx, bson.M{"cycleId": cycleID})
}

func (r *DrawRepository) find(ctx context.Context, filter bson.M) ([]*models.Draw, error) {
	opts := options.Find().SetSort(bson.M{"drawDate": -1})
	cursor, err := r.draws.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}

// Count counts draws
func (r *DrawRepository) Count(ctx context.Context) (int64, error) {
	return r.draws.CountDocuments(ctx, bson.M{})
}
