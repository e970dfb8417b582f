package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Santo1997/summer-sage-server/internal/db"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

// PaymentRepository defines payment persistence operations.
// Payments are append-only.
type PaymentRepository interface {
	Insert(ctx context.Context, payment *model.Payment) (primitive.ObjectID, error)
	List(ctx context.Context, email string) ([]model.Payment, error)
}

type paymentRepository struct {
	coll *mongo.Collection
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(database *mongo.Database) PaymentRepository {
	return &paymentRepository{coll: database.Collection(db.PaymentsCollection)}
}

// Insert stores a payment record.
func (r *paymentRepository) Insert(ctx context.Context, payment *model.Payment) (primitive.ObjectID, error) {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return primitive.NilObjectID, err
	}
	return payment.ID, nil
}

// List returns payments newest first, optionally filtered by payer email.
func (r *paymentRepository) List(ctx context.Context, email string) ([]model.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	payments := make([]model.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
