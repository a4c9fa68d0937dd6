package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"studypulse/internal/model"
)

// StudentRepo handles MongoDB operations for student profiles
type StudentRepo interface {
	Create(ctx context.Context, student *model.Student) (string, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	TouchActivity(ctx context.Context, id string) error
	GetInactiveSince(ctx context.Context, cutoff time.Time) ([]*model.Student, error)
}

type studentRepo struct {
	collection *mongo.Collection
}

// NewStudentRepo creates a new student repository
func NewStudentRepo(db *mongo.Database) StudentRepo {
	return &studentRepo{
		collection: db.Collection("students"),
	}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) (string, error) {
	now := time.Now()
	student.CreatedAt = now
	student.LastActiveAt = now
	if student.ID == "" {
		student.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, student); err != nil {
		return "", err
	}
	return student.ID, nil
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) TouchActivity(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastActiveAt": time.Now()}})
	return err
}

func (r *studentRepo) GetInactiveSince(ctx context.Context, cutoff time.Time) ([]*model.Student, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"lastActiveAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
