package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studypulse/internal/model"
)

// Seeds a starter practice item pool and a demo student. Safe to run
// against an empty database; running twice duplicates the items.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "studypulse"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(mongoDB)

	items := starterItems()
	itemColl := db.Collection("practice_items")
	for _, item := range items {
		item.ID = primitive.NewObjectID().Hex()
		item.CreatedAt = time.Now()
		if _, err := itemColl.InsertOne(ctx, item); err != nil {
			log.Fatalf("Failed to insert item: %v", err)
		}
	}
	fmt.Printf("Seeded %d practice items\n", len(items))

	student := model.Student{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "Demo Student",
		Email:        "demo@studypulse.local",
		Subjects:     []string{"algebra", "physics"},
		LastActiveAt: time.Now(),
		CreatedAt:    time.Now(),
	}
	if _, err := db.Collection("students").InsertOne(ctx, student); err != nil {
		log.Fatalf("Failed to insert demo student: %v", err)
	}
	fmt.Printf("Seeded demo student %s\n", student.ID)
}

func starterItems() []model.PracticeItem {
	var items []model.PracticeItem

	algebra := []struct {
		difficulty int
		prompt     string
		answer     string
		hint       string
	}{
		{1, "Solve for x: x + 3 = 7", "x = 4", "Subtract 3 from both sides"},
		{2, "Solve for x: 2x - 5 = 9", "x = 7", "Add 5, then divide by 2"},
		{3, "Factor: x^2 - 9", "(x-3)(x+3)", "Difference of squares"},
		{4, "Solve: x^2 - 5x + 6 = 0", "x = 2 or x = 3", "Factor the quadratic"},
		{5, "Simplify: (x^2 - 4)/(x - 2)", "x + 2", "Factor the numerator first"},
		{6, "Solve the system: x + y = 10, x - y = 2", "x = 6, y = 4", "Add the two equations"},
		{7, "Solve: |2x - 1| = 7", "x = 4 or x = -3", "Split into two cases"},
		{8, "Find the vertex of y = x^2 - 6x + 5", "(3, -4)", "Complete the square"},
		{9, "Solve: log2(x) + log2(x - 2) = 3", "x = 4", "Combine the logs into one"},
		{10, "Prove that sqrt(2) is irrational", "Assume p/q in lowest terms and derive a contradiction", "Suppose the opposite"},
	}
	for _, q := range algebra {
		items = append(items, model.PracticeItem{
			Subject:        "algebra",
			Difficulty:     q.difficulty,
			Prompt:         q.prompt,
			Answer:         q.answer,
			Hints:          []string{q.hint},
			OptimalTimeSec: float64(30 + q.difficulty*15),
		})
	}

	physics := []struct {
		difficulty int
		prompt     string
		answer     string
		hint       string
	}{
		{1, "What is the SI unit of force?", "newton", "Named after a famous physicist"},
		{3, "A car travels 120 km in 2 hours. What is its average speed?", "60 km/h", "Distance over time"},
		{5, "A 2 kg mass accelerates at 3 m/s^2. What net force acts on it?", "6 N", "F = ma"},
		{7, "A ball is dropped from 20 m. How long until it hits the ground? (g = 10 m/s^2)", "2 s", "h = (1/2)gt^2"},
		{9, "Derive the escape velocity formula from energy conservation", "v = sqrt(2GM/r)", "Set kinetic energy equal to gravitational potential energy"},
	}
	for _, q := range physics {
		items = append(items, model.PracticeItem{
			Subject:        "physics",
			Difficulty:     q.difficulty,
			Prompt:         q.prompt,
			Answer:         q.answer,
			Hints:          []string{q.hint},
			OptimalTimeSec: float64(30 + q.difficulty*15),
		})
	}

	return items
}
