package mongodb

import (
	"context"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DrawSettingsRepository implements repositories.DrawSettingsRepository
type DrawSettingsRepository struct {
	collection         *mongo.Collection
	defaultCadenceDays int
}

// NewDrawSettingsRepository creates a new DrawSettingsRepository. The
// default cadence seeds the record on first access.
func NewDrawSettingsRepository(db *mongo.Database, defaultCadenceDays int) repositories.DrawSettingsRepository {
	return &DrawSettingsRepository{
		collection:         db.Collection("draw_settings"),
		defaultCadenceDays: defaultCadenceDays,
	}
}

// Get retrieves the draw settings, creating defaults when none exist
func (r *DrawSettingsRepository) Get(ctx context.Context) (*models.DrawSettings, error) {
	var settings models.DrawSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DrawSettings{
			CadenceDays: r.defaultCadenceDays,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		_, err = r.collection.InsertOne(ctx, settings)
		if err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update replaces the draw settings record
func (r *DrawSettingsRepository) Update(ctx context.Context, settings *models.DrawSettings) error {
	settings.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{}, settings)
	return err
}

// UpdateCadence updates only the global cadence
func (r *DrawSettingsRepository) UpdateCadence(ctx context.Context, cadenceDays int, updatedBy string) error {
	update := bson.M{
		"$set": bson.M{
			"cadenceDays": cadenceDays,
			"updatedAt":   time.Now(),
			"updatedBy":   updatedBy,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{}, update)
	return err
}
