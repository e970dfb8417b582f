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

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	roles := new(MockRoleStore)
	repo.On("InsertIfAbsent", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleStudent
	})).Return(&model.User{Email: "a@x.com", Role: model.RoleStudent}, true, nil)

	user, created, err := NewUserService(repo, roles, discardLogger()).Register(ctx, &model.User{Email: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleStudent, user.Role)
}

func TestUserService_Register_RejectsPrivilegedRoles(t *testing.T) {
	ctx := context.Background()

	for _, role := range []model.Role{model.RoleAdmin, "superuser"} {
		repo := new(MockUserRepository)
		_, _, err := NewUserService(repo, new(MockRoleStore), discardLogger()).
			Register(ctx, &model.User{Email: "evil@x.com", Role: role})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole, string(role))
		repo.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
	}
}

func TestUserService_Role(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)
		roles.On("GetRole", ctx, "a@x.com").Return(model.RoleAdmin, true)

		role, err := NewUserService(repo, roles, discardLogger()).Role(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads and fills", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)
		roles.On("GetRole", ctx, "a@x.com").Return(model.Role(""), false)
		repo.On("FindByEmail", ctx, "a@x.com").Return(&model.User{Email: "a@x.com", Role: model.RoleInstructor}, nil)
		roles.On("SetRole", ctx, "a@x.com", model.RoleInstructor).Return(nil)

		role, err := NewUserService(repo, roles, discardLogger()).Role(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleInstructor, role)
		roles.AssertExpectations(t)
	})

	t.Run("unknown user has no role", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)
		roles.On("GetRole", ctx, "ghost@x.com").Return(model.Role(""), false)
		repo.On("FindByEmail", ctx, "ghost@x.com").Return(nil, apperrors.ErrNotFound)

		role, err := NewUserService(repo, roles, discardLogger()).Role(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.Empty(t, role)
		roles.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)
		boom := errors.New("timeout")
		roles.On("GetRole", ctx, "a@x.com").Return(model.Role(""), false)
		repo.On("FindByEmail", ctx, "a@x.com").Return(nil, boom)

		_, err := NewUserService(repo, roles, discardLogger()).Role(ctx, "a@x.com")
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("invalidates cached role", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)
		repo.On("UpdateRole", ctx, id, model.RoleAdmin).Return(&model.User{ID: id, Email: "b@x.com", Role: model.RoleAdmin}, nil)
		roles.On("Invalidate", ctx, "b@x.com").Return(nil)

		user, err := NewUserService(repo, roles, discardLogger()).UpdateRole(ctx, id, model.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		roles.AssertExpectations(t)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		repo := new(MockUserRepository)
		roles := new(MockRoleStore)

		_, err := NewUserService(repo, roles, discardLogger()).UpdateRole(ctx, id, model.Role("overlord"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}
