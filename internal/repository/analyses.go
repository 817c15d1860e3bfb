package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisDocument records one completed analysis. The workbooks themselves
// are not stored.
type AnalysisDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID         string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	SourceFilename    string             `bson:"source_filename" json:"source_filename"`
	OutputFilename    string             `bson:"output_filename" json:"output_filename"`
	InputSHA256       string             `bson:"input_sha256" json:"input_sha256"`
	InputBytes        int                `bson:"input_bytes" json:"input_bytes"`
	GrandTotal        int                `bson:"grand_total" json:"grand_total"`
	CategoryTotals    map[string]int     `bson:"category_totals" json:"category_totals"`
	SizeCount         int                `bson:"size_count" json:"size_count"`
	LotCount          int                `bson:"lot_count" json:"lot_count"`
	LocationCount     int                `bson:"location_count" json:"location_count"`
	RowsRead          int                `bson:"rows_read" json:"rows_read"`
	ExcludedSizes     int                `bson:"excluded_sizes" json:"excluded_sizes"`
	ZeroedQuantities  int                `bson:"zeroed_quantities" json:"zeroed_quantities"`
	UnknownCategories []string           `bson:"unknown_categories,omitempty" json:"unknown_categories,omitempty"`
	SizeOrder         []int              `bson:"size_order,omitempty" json:"size_order,omitempty"`
	DurationMs        int64              `bson:"duration_ms" json:"duration_ms"`
	Cached            bool               `bson:"cached" json:"cached"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// AnalysesRepository stores analysis history.
type AnalysesRepository struct {
	collection *mongo.Collection
}

// NewAnalysesRepository creates a new analyses repository.
func NewAnalysesRepository(db *MongoDB) *AnalysesRepository {
	return &AnalysesRepository{
		collection: db.Analyses,
	}
}

// Create inserts doc, filling ID and CreatedAt when unset.
func (r *AnalysesRepository) Create(ctx context.Context, doc *AnalysisDocument) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// List returns the most recent analyses first.
func (r *AnalysesRepository) List(ctx context.Context, limit int) ([]AnalysisDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
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

	docs := []AnalysisDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count returns the number of stored analyses.
func (r *AnalysesRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
