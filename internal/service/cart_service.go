package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
)

// CartService exposes cart operations.
type CartService interface {
	Add(ctx context.Context, item *model.CartItem) (*model.CartItem, bool, error)
	List(ctx context.Context, email string) ([]model.CartItem, error)
	Remove(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type cartService struct {
	repo repository.CartRepository
}

// NewCartService wires the cart repository.
func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) Add(ctx context.Context, item *model.CartItem) (*model.CartItem, bool, error) {
	out, created, err := s.repo.InsertIfAbsent(ctx, item)
	if err != nil {
		return nil, false, fmt.Errorf("insert cart item: %w", err)
	}
	return out, created, nil
}

// List returns the cart of email; empty when email is empty.
func (s *cartService) List(ctx context.Context, email string) ([]model.CartItem, error) {
	if email == "" {
		return []model.CartItem{}, nil
	}
	return s.repo.ListByUser(ctx, email)
}

// Remove deletes one entry by id. Ownership is not checked.
func (s *cartService) Remove(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	return n, nil
}
