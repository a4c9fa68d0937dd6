package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studypulse/internal/model"
)

// RatingRepo handles MongoDB operations for per-(student, subject) ratings
type RatingRepo interface {
	Get(ctx context.Context, studentID, subject string) (*model.Rating, error)
	// Upsert writes the new rating, creating the row on first completion.
	// The filtered upsert makes concurrent completions last-writer-wins at
	// the document level rather than losing the row entirely.
	Upsert(ctx context.Context, studentID, subject string, rating int) error
	// Reset puts the rating back to the default value. Idempotent.
	Reset(ctx context.Context, studentID, subject string, defaultRating int) error
	GetByStudent(ctx context.Context, studentID string) ([]*model.Rating, error)
	TopBySubject(ctx context.Context, subject string, limit int) ([]*model.Rating, error)
}

type ratingRepo struct {
	collection *mongo.Collection
}

// NewRatingRepo creates a new rating repository
func NewRatingRepo(db *mongo.Database) RatingRepo {
	return &ratingRepo{
		collection: db.Collection("ratings"),
	}
}

func (r *ratingRepo) filter(studentID, subject string) bson.M {
	return bson.M{"studentId": studentID, "subject": subject}
}

func (r *ratingRepo) Get(ctx context.Context, studentID, subject string) (*model.Rating, error) {
	var rating model.Rating
	err := r.collection.FindOne(ctx, r.filter(studentID, subject)).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepo) Upsert(ctx context.Context, studentID, subject string, rating int) error {
	update := bson.M{
		"$set": bson.M{
			"rating":      rating,
			"lastUpdated": time.Now(),
		},
		"$setOnInsert": bson.M{
			"studentId": studentID,
			"subject":   subject,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, r.filter(studentID, subject), update, opts)
	return err
}

func (r *ratingRepo) Reset(ctx context.Context, studentID, subject string, defaultRating int) error {
	return r.Upsert(ctx, studentID, subject, defaultRating)
}

func (r *ratingRepo) GetByStudent(ctx context.Context, studentID string) ([]*model.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*model.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepo) TopBySubject(ctx context.Context, subject string, limit int) ([]*model.Rating, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"subject": subject}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*model.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
