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

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	ListApproved(ctx context.Context) ([]model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Course, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
	InsertIfAbsent(ctx context.Context, course *model.Course) (*model.Course, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.UpdateResult, error)
}

type courseRepository struct {
	coll *mongo.Collection
}

// NewCourseRepository builds a MongoDB-backed repository.
func NewCourseRepository(database *mongo.Database) CourseRepository {
	return &courseRepository{coll: database.Collection(db.CoursesCollection)}
}

// ListApproved returns approved courses, most enrolled first.
func (r *courseRepository) ListApproved(ctx context.Context) ([]model.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "student_enroll", Value: -1}})
	return r.find(ctx, bson.M{"status": model.CourseStatusApproved}, opts)
}

func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	return r.find(ctx, bson.M{})
}

func (r *courseRepository) ListByInstructor(ctx context.Context, email string) ([]model.Course, error) {
	return r.find(ctx, bson.M{"instructor.email": email})
}

func (r *courseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	var course model.Course
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// InsertIfAbsent inserts course unless one with the same name exists.
// The boolean reports whether a new document was created.
func (r *courseRepository) InsertIfAbsent(ctx context.Context, course *model.Course) (*model.Course, bool, error) {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	var existing model.Course
	created, err := insertIfAbsent(ctx, r.coll, bson.M{"name": course.Name}, course, &existing)
	if err != nil {
		return nil, false, err
	}
	if created {
		return course, true, nil
	}
	return &existing, false, nil
}

// Update sets only the given fields. A missing id is upserted.
func (r *courseRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.UpdateResult, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrNoFields
	}
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (r *courseRepository) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]model.Course, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	courses := make([]model.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
