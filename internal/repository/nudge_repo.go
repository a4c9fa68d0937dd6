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

// NudgeRepo handles MongoDB operations for sent nudges
type NudgeRepo interface {
	Create(ctx context.Context, nudge *model.Nudge) (string, error)
	GetLastForStudent(ctx context.Context, studentID string, kind model.NudgeKind) (*model.Nudge, error)
	GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.Nudge, error)
}

type nudgeRepo struct {
	collection *mongo.Collection
}

// NewNudgeRepo creates a new nudge repository
func NewNudgeRepo(db *mongo.Database) NudgeRepo {
	return &nudgeRepo{
		collection: db.Collection("nudges"),
	}
}

func (r *nudgeRepo) Create(ctx context.Context, nudge *model.Nudge) (string, error) {
	if nudge.SentAt.IsZero() {
		nudge.SentAt = time.Now()
	}
	if nudge.ID == "" {
		nudge.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, nudge); err != nil {
		return "", err
	}
	return nudge.ID, nil
}

func (r *nudgeRepo) GetLastForStudent(ctx context.Context, studentID string, kind model.NudgeKind) (*model.Nudge, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	var nudge model.Nudge
	err := r.collection.FindOne(ctx, bson.M{"studentId": studentID, "kind": kind}, opts).Decode(&nudge)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &nudge, nil
}

func (r *nudgeRepo) GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.Nudge, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var nudges []*model.Nudge
	if err := cursor.All(ctx, &nudges); err != nil {
		return nil, err
	}
	return nudges, nil
}
