package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
)

// CourseService exposes course operations.
type CourseService interface {
	ListApproved(ctx context.Context) ([]model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
	Create(ctx context.Context, course *model.Course, callerEmail string) (*model.Course, bool, error)
	Review(ctx context.Context, id primitive.ObjectID, review model.CourseReview) (*model.UpdateResult, error)
	Update(ctx context.Context, id primitive.ObjectID, update model.CourseUpdate) (*model.UpdateResult, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Course, error)
}

type courseService struct {
	repo repository.CourseRepository
}

// NewCourseService wires the course repository.
func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) ListApproved(ctx context.Context) ([]model.Course, error) {
	return s.repo.ListApproved(ctx)
}

func (s *courseService) ListAll(ctx context.Context) ([]model.Course, error) {
	return s.repo.List(ctx)
}

// Get returns the course or nil when no course has that id.
func (s *courseService) Get(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return course, nil
}

// Create stores a new course unless one with the same name exists.
// New courses always start pending review; status and feedback are set by
// an admin through Review.
func (s *courseService) Create(ctx context.Context, course *model.Course, callerEmail string) (*model.Course, bool, error) {
	if course.Instructor.Email == "" {
		course.Instructor.Email = callerEmail
	}
	course.Status = model.CourseStatusPending
	course.Feedback = ""
	out, created, err := s.repo.InsertIfAbsent(ctx, course)
	if err != nil {
		return nil, false, fmt.Errorf("insert course: %w", err)
	}
	return out, created, nil
}

func (s *courseService) Review(ctx context.Context, id primitive.ObjectID, review model.CourseReview) (*model.UpdateResult, error) {
	return s.update(ctx, id, review.Fields())
}

func (s *courseService) Update(ctx context.Context, id primitive.ObjectID, update model.CourseUpdate) (*model.UpdateResult, error) {
	return s.update(ctx, id, update.Fields())
}

func (s *courseService) update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.UpdateResult, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrNoFields
	}
	res, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return res, nil
}

// ListByInstructor returns the courses taught by email; none when email is empty.
func (s *courseService) ListByInstructor(ctx context.Context, email string) ([]model.Course, error) {
	if email == "" {
		return []model.Course{}, nil
	}
	return s.repo.ListByInstructor(ctx, email)
}
