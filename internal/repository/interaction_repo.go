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

// InteractionRepo handles MongoDB operations for Q&A interactions
type InteractionRepo interface {
	Create(ctx context.Context, interaction *model.Interaction) (string, error)
	GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.Interaction, error)
	GetEscalations(ctx context.Context, subject string, limit int) ([]*model.Interaction, error)
	CountEscalationsByStudent(ctx context.Context, studentID string) (int64, error)
}

type interactionRepo struct {
	collection *mongo.Collection
}

// NewInteractionRepo creates a new interaction repository
func NewInteractionRepo(db *mongo.Database) InteractionRepo {
	return &interactionRepo{
		collection: db.Collection("interactions"),
	}
}

func (r *interactionRepo) Create(ctx context.Context, interaction *model.Interaction) (string, error) {
	if interaction.AskedAt.IsZero() {
		interaction.AskedAt = time.Now()
	}
	if interaction.ID == "" {
		interaction.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, interaction); err != nil {
		return "", err
	}
	return interaction.ID, nil
}

func (r *interactionRepo) GetByStudent(ctx context.Context, studentID string, limit int) ([]*model.Interaction, error) {
	return r.find(ctx, bson.M{"studentId": studentID}, limit)
}

func (r *interactionRepo) GetEscalations(ctx context.Context, subject string, limit int) ([]*model.Interaction, error) {
	filter := bson.M{"escalationRequired": true}
	if subject != "" {
		filter["subject"] = subject
	}
	return r.find(ctx, filter, limit)
}

func (r *interactionRepo) find(ctx context.Context, filter bson.M, limit int) ([]*model.Interaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "askedAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interactions []*model.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *interactionRepo) CountEscalationsByStudent(ctx context.Context, studentID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"studentId":          studentID,
		"escalationRequired": true,
	})
}
