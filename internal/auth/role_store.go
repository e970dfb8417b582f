package auth

import (
	"context"
	"time"

	"github.com/Santo1997/summer-sage-server/internal/cache"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

const roleKeyPrefix = "role:"

// RoleStoreInterface caches the role of a user by email.
type RoleStoreInterface interface {
	GetRole(ctx context.Context, email string) (model.Role, bool)
	SetRole(ctx context.Context, email string, role model.Role) error
	Invalidate(ctx context.Context, email string) error
}

// RoleStore keeps email -> role entries in Redis for a short TTL so the admin
// guard does not hit the users collection on every request.
type RoleStore struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ RoleStoreInterface = (*RoleStore)(nil)

// NewRoleStore creates a role store. A non-positive ttl disables caching.
func NewRoleStore(cache *cache.Client, ttl time.Duration) *RoleStore {
	return &RoleStore{cache: cache, ttl: ttl}
}

// GetRole returns the cached role. The boolean is false on a miss.
func (s *RoleStore) GetRole(ctx context.Context, email string) (model.Role, bool) {
	if s.ttl <= 0 {
		return "", false
	}
	data, _ := s.cache.Get(ctx, roleKeyPrefix+email)
	if data == nil {
		return "", false
	}
	return model.Role(data), true
}

// SetRole caches role for email.
func (s *RoleStore) SetRole(ctx context.Context, email string, role model.Role) error {
	if s.ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, roleKeyPrefix+email, []byte(role), s.ttl)
}

// Invalidate drops the cached role so the next lookup reads the database.
func (s *RoleStore) Invalidate(ctx context.Context, email string) error {
	return s.cache.Delete(ctx, roleKeyPrefix+email)
}
