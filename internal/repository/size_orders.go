package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SizeOrderConfig is a versioned size order document. Exactly one document is
// active at a time; older versions are kept as history.
type SizeOrderConfig struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sizes     []int              `bson:"sizes" json:"sizes"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
}

// SizeOrdersRepository stores size order configurations.
type SizeOrdersRepository struct {
	collection *mongo.Collection
}

// NewSizeOrdersRepository creates a new size orders repository.
func NewSizeOrdersRepository(db *MongoDB) *SizeOrdersRepository {
	return &SizeOrdersRepository{
		collection: db.SizeOrders,
	}
}

// GetActive returns the active configuration, or nil when none exists.
func (r *SizeOrdersRepository) GetActive(ctx context.Context) (*SizeOrderConfig, error) {
	var config SizeOrderConfig
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&config)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Create deactivates the current configuration and inserts sizes as the new
// active version.
func (r *SizeOrdersRepository) Create(ctx context.Context, sizes []int, createdBy, note string) (*SizeOrderConfig, error) {
	version, err := r.nextVersion(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	config := SizeOrderConfig{
		ID:        primitive.NewObjectID(),
		Sizes:     sizes,
		Active:    true,
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
		Note:      note,
	}
	if _, err := r.collection.InsertOne(ctx, config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *SizeOrdersRepository) nextVersion(ctx context.Context) (int, error) {
	var latest SizeOrderConfig
	opts := options.FindOne().
		SetSort(bson.M{"version": -1}).
		SetProjection(bson.M{"version": 1})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

// List returns configurations, newest first.
func (r *SizeOrdersRepository) List(ctx context.Context, limit int) ([]SizeOrderConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	configs := []SizeOrderConfig{}
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
