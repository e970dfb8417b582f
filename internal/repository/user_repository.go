package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Santo1997/summer-sage-server/internal/db"
	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	InsertIfAbsent(ctx context.Context, user *model.User) (*model.User, bool, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListByEmail(ctx context.Context, email string) ([]model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*model.User, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed repository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &userRepository{coll: database.Collection(db.UsersCollection)}
}

func (r *userRepository) InsertIfAbsent(ctx context.Context, user *model.User) (*model.User, bool, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	var existing model.User
	created, err := insertIfAbsent(ctx, r.coll, bson.M{"email": user.Email}, user, &existing)
	if err != nil {
		return nil, false, err
	}
	if created {
		return user, true, nil
	}
	return &existing, false, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

// ListByEmail returns users with the given email, or every user when email is empty.
func (r *userRepository) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return r.find(ctx, filter)
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.find(ctx, bson.M{})
}

// UpdateRole sets the role of the user with id and returns the document after
// the update. A missing id is upserted.
func (r *userRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*model.User, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user model.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}}, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) find(ctx context.Context, filter interface{}) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
