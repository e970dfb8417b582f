package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards to gateway", func(t *testing.T) {
		gw := new(MockGateway)
		price := decimal.RequireFromString("49.99")
		gw.On("CreateIntent", ctx, price).Return("pi_secret", nil)

		secret, err := NewPaymentService(new(MockPaymentRepository), gw, discardLogger()).CreateIntent(ctx, price)
		require.NoError(t, err)
		assert.Equal(t, "pi_secret", secret)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		gw := new(MockGateway)
		_, err := NewPaymentService(new(MockPaymentRepository), gw, discardLogger()).CreateIntent(ctx, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		gw.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()

	repo := new(MockPaymentRepository)
	repo.On("Insert", ctx, mock.MatchedBy(func(p *model.Payment) bool {
		return p.Date.Equal(fixed)
	})).Return(id, nil)

	svc := NewPaymentService(repo, new(MockGateway), discardLogger()).(*paymentService)
	svc.now = func() time.Time { return fixed }

	got, err := svc.Record(ctx, &model.Payment{Email: "s@x.com", TransactionID: "pi_1", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	repo.AssertExpectations(t)
}

func TestCartService(t *testing.T) {
	ctx := context.Background()

	t.Run("empty user yields empty cart", func(t *testing.T) {
		repo := new(MockCartRepository)
		items, err := NewCartService(repo).List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, items)
		repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})

	t.Run("remove returns count", func(t *testing.T) {
		repo := new(MockCartRepository)
		id := primitive.NewObjectID()
		repo.On("Delete", ctx, id).Return(int64(1), nil)

		n, err := NewCartService(repo).Remove(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
