package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studypulse/internal/model"
)

// ItemRepo handles MongoDB operations for practice items
type ItemRepo interface {
	Create(ctx context.Context, item *model.PracticeItem) (string, error)
	GetByID(ctx context.Context, id string) (*model.PracticeItem, error)
	// FindInRange returns one item in the difficulty band the given student
	// has not attempted yet (excludeIDs), preferring harder items.
	FindInRange(ctx context.Context, subject string, lowDiff, highDiff int, excludeIDs []string) (*model.PracticeItem, error)
	CountInRange(ctx context.Context, subject string, lowDiff, highDiff int) (int64, error)
}

type itemRepo struct {
	collection *mongo.Collection
}

// NewItemRepo creates a new practice item repository
func NewItemRepo(db *mongo.Database) ItemRepo {
	return &itemRepo{
		collection: db.Collection("practice_items"),
	}
}

func (r *itemRepo) Create(ctx context.Context, item *model.PracticeItem) (string, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.ID == "" {
		item.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.PracticeItem, error) {
	var item model.PracticeItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindInRange(ctx context.Context, subject string, lowDiff, highDiff int, excludeIDs []string) (*model.PracticeItem, error) {
	filter := bson.M{
		"subject":    subject,
		"difficulty": bson.M{"$gte": lowDiff, "$lte": highDiff},
	}
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "difficulty", Value: -1}})
	var item model.PracticeItem
	err := r.collection.FindOne(ctx, filter, opts).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) CountInRange(ctx context.Context, subject string, lowDiff, highDiff int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"subject":    subject,
		"difficulty": bson.M{"$gte": lowDiff, "$lte": highDiff},
	})
}
