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

// AttemptRepo handles MongoDB operations for practice attempts
type AttemptRepo interface {
	Create(ctx context.Context, attempt *model.PracticeAttempt) (string, error)
	GetRecent(ctx context.Context, studentID, subject string, limit int) ([]*model.PracticeAttempt, error)
	GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.PracticeAttempt, error)
	CountSince(ctx context.Context, studentID string, since time.Time) (int64, error)
}

type attemptRepo struct {
	collection *mongo.Collection
}

// NewAttemptRepo creates a new attempt repository
func NewAttemptRepo(db *mongo.Database) AttemptRepo {
	return &attemptRepo{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepo) Create(ctx context.Context, attempt *model.PracticeAttempt) (string, error) {
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}
	if attempt.ID == "" {
		attempt.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, attempt); err != nil {
		return "", err
	}
	return attempt.ID, nil
}

func (r *attemptRepo) GetRecent(ctx context.Context, studentID, subject string, limit int) ([]*model.PracticeAttempt, error) {
	return r.find(ctx, bson.M{"studentId": studentID, "subject": subject}, limit)
}

func (r *attemptRepo) GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.PracticeAttempt, error) {
	return r.find(ctx, bson.M{"studentId": studentID}, limit)
}

func (r *attemptRepo) find(ctx context.Context, filter bson.M, limit int) ([]*model.PracticeAttempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.PracticeAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepo) CountSince(ctx context.Context, studentID string, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"studentId":   studentID,
		"completedAt": bson.M{"$gte": since},
	})
}
