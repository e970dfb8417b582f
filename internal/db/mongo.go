package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names inside the camp database.
const (
	CoursesCollection  = "courses"
	UsersCollection    = "users"
	CartsCollection    = "carts"
	PaymentsCollection = "payments"
)

const connectTimeout = 10 * time.Second

// NewMongo returns a connected client after a successful ping.
func NewMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique keys the handlers rely on for
// insert-if-absent. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	}
	if _, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, users); err != nil {
		return fmt.Errorf("index users.email: %w", err)
	}

	carts := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "courseId", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_course_user"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
	}
	if _, err := database.Collection(CartsCollection).Indexes().CreateMany(ctx, carts); err != nil {
		return fmt.Errorf("index carts: %w", err)
	}

	courses := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "student_enroll", Value: -1}},
			Options: options.Index().SetName("by_status_enroll"),
		},
		{
			Keys:    bson.D{{Key: "instructor.email", Value: 1}},
			Options: options.Index().SetName("by_instructor"),
		},
	}
	if _, err := database.Collection(CoursesCollection).Indexes().CreateMany(ctx, courses); err != nil {
		return fmt.Errorf("index courses: %w", err)
	}

	return nil
}
