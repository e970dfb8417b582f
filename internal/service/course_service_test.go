package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

func TestCourseService_Get(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("missing course is nil without error", func(t *testing.T) {
		repo := new(MockCourseRepository)
		repo.On("FindByID", ctx, id).Return(nil, apperrors.ErrNotFound)

		course, err := NewCourseService(repo).Get(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, course)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := new(MockCourseRepository)
		boom := errors.New("socket closed")
		repo.On("FindByID", ctx, id).Return(nil, boom)

		_, err := NewCourseService(repo).Get(ctx, id)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults instructor and status", func(t *testing.T) {
		repo := new(MockCourseRepository)
		repo.On("InsertIfAbsent", ctx, mock.MatchedBy(func(c *model.Course) bool {
			return c.Instructor.Email == "t@x.com" && c.Status == model.CourseStatusPending
		})).Return(&model.Course{Name: "Drama"}, true, nil)

		_, created, err := NewCourseService(repo).Create(ctx, &model.Course{Name: "Drama"}, "t@x.com")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("client status is overridden", func(t *testing.T) {
		repo := new(MockCourseRepository)
		repo.On("InsertIfAbsent", ctx, mock.MatchedBy(func(c *model.Course) bool {
			return c.Status == model.CourseStatusPending && c.Feedback == ""
		})).Return(&model.Course{Name: "Drama", Status: model.CourseStatusPending}, true, nil)

		in := &model.Course{Name: "Drama", Status: model.CourseStatusApproved, Feedback: "looks good"}
		_, _, err := NewCourseService(repo).Create(ctx, in, "t@x.com")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("keeps explicit instructor", func(t *testing.T) {
		repo := new(MockCourseRepository)
		repo.On("InsertIfAbsent", ctx, mock.MatchedBy(func(c *model.Course) bool {
			return c.Instructor.Email == "other@x.com"
		})).Return(&model.Course{Name: "Drama"}, false, nil)

		in := &model.Course{Name: "Drama", Instructor: model.Instructor{Email: "other@x.com"}}
		_, created, err := NewCourseService(repo).Create(ctx, in, "t@x.com")
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestCourseService_Review(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("only status", func(t *testing.T) {
		repo := new(MockCourseRepository)
		status := model.CourseStatusApproved
		repo.On("Update", ctx, id, map[string]interface{}{"status": model.CourseStatusApproved}).
			Return(&model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

		res, err := NewCourseService(repo).Review(ctx, id, model.CourseReview{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ModifiedCount)
		repo.AssertExpectations(t)
	})

	t.Run("only feedback", func(t *testing.T) {
		repo := new(MockCourseRepository)
		feedback := "needs a syllabus"
		repo.On("Update", ctx, id, map[string]interface{}{"feedback": feedback}).
			Return(&model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

		_, err := NewCourseService(repo).Review(ctx, id, model.CourseReview{Feedback: &feedback})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("no fields", func(t *testing.T) {
		repo := new(MockCourseRepository)
		_, err := NewCourseService(repo).Review(ctx, id, model.CourseReview{})
		assert.ErrorIs(t, err, apperrors.ErrNoFields)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCourseService_ListByInstructor(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCourseRepository)

	courses, err := NewCourseService(repo).ListByInstructor(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, courses)
	repo.AssertNotCalled(t, "ListByInstructor", mock.Anything, mock.Anything)

	repo.On("ListByInstructor", ctx, "t@x.com").Return([]model.Course{{Name: "Art"}}, nil)
	courses, err = NewCourseService(repo).ListByInstructor(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}
