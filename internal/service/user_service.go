package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Santo1997/summer-sage-server/internal/auth"
	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
)

// UserService exposes user operations.
type UserService interface {
	Register(ctx context.Context, user *model.User) (*model.User, bool, error)
	Teachers(ctx context.Context) ([]model.User, error)
	ByEmail(ctx context.Context, email string) ([]model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Role(ctx context.Context, email string) (model.Role, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	roles auth.RoleStoreInterface
	log   logrus.FieldLogger
}

// NewUserService wires the user repository and the role cache.
func NewUserService(repo repository.UserRepository, roles auth.RoleStoreInterface, log logrus.FieldLogger) UserService {
	return &userService{repo: repo, roles: roles, log: log}
}

// Register stores user on first sign-in; an existing user is returned unchanged.
func (s *userService) Register(ctx context.Context, user *model.User) (*model.User, bool, error) {
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	if !user.Role.SelfAssignable() {
		return nil, false, apperrors.ErrInvalidRole
	}
	out, created, err := s.repo.InsertIfAbsent(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}
	if created {
		s.log.WithField("email", out.Email).Info("user registered")
	}
	return out, created, nil
}

func (s *userService) Teachers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleInstructor)
}

func (s *userService) ByEmail(ctx context.Context, email string) ([]model.User, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Role resolves the role of email, consulting the cache first.
// An unknown email yields an empty role and no error.
func (s *userService) Role(ctx context.Context, email string) (model.Role, error) {
	if role, ok := s.roles.GetRole(ctx, email); ok {
		return role, nil
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	_ = s.roles.SetRole(ctx, email, user.Role)
	return user.Role, nil
}

// UpdateRole changes the role of the user with id and drops its cached role.
func (s *userService) UpdateRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if user.Email != "" {
		_ = s.roles.Invalidate(ctx, user.Email)
	}
	s.log.WithFields(logrus.Fields{"user_id": id.Hex(), "role": role}).Info("user role updated")
	return user, nil
}
