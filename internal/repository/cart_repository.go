package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Santo1997/summer-sage-server/internal/db"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

// CartRepository defines cart persistence operations.
type CartRepository interface {
	InsertIfAbsent(ctx context.Context, item *model.CartItem) (*model.CartItem, bool, error)
	ListByUser(ctx context.Context, email string) ([]model.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type cartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository builds a MongoDB-backed repository.
func NewCartRepository(database *mongo.Database) CartRepository {
	return &cartRepository{coll: database.Collection(db.CartsCollection)}
}

// InsertIfAbsent adds item unless the user already has that course in the cart.
func (r *cartRepository) InsertIfAbsent(ctx context.Context, item *model.CartItem) (*model.CartItem, bool, error) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	filter := bson.M{"courseId": item.CourseID, "user": item.User}
	var existing model.CartItem
	created, err := insertIfAbsent(ctx, r.coll, filter, item, &existing)
	if err != nil {
		return nil, false, err
	}
	if created {
		return item, true, nil
	}
	return &existing, false, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, email string) ([]model.CartItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user": email})
	if err != nil {
		return nil, err
	}
	items := make([]model.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the entry with id and reports how many documents went away.
func (r *cartRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
