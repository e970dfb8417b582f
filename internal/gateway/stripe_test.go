package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
)

type mockIntents struct {
	mock.Mock
}

func (m *mockIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentIntent), args.Error(1)
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"12.345", 1235},
		{"12.344", 1234},
		{"10", 1000},
		{"0.005", 1},
		{"0.004", 0},
		{"99.99", 9999},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestStripeGateway_CreateIntent(t *testing.T) {
	intents := new(mockIntents)
	intents.On("New", mock.MatchedBy(func(p *stripe.PaymentIntentParams) bool {
		return *p.Amount == 1235 &&
			*p.Currency == "usd" &&
			len(p.PaymentMethodTypes) == 1 && *p.PaymentMethodTypes[0] == "card"
	})).Return(&stripe.PaymentIntent{ClientSecret: "pi_1_secret_abc"}, nil)

	secret, err := NewStripeGateway(intents).CreateIntent(context.Background(), decimal.RequireFromString("12.345"))
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", secret)
	intents.AssertExpectations(t)
}

func TestStripeGateway_RejectsNonPositive(t *testing.T) {
	intents := new(mockIntents)
	gw := NewStripeGateway(intents)

	for _, p := range []string{"0", "-5", "0.001"} {
		_, err := gw.CreateIntent(context.Background(), decimal.RequireFromString(p))
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, p)
	}
	intents.AssertNotCalled(t, "New", mock.Anything)
}

func TestStripeGateway_WrapsErrors(t *testing.T) {
	intents := new(mockIntents)
	intents.On("New", mock.Anything).Return(nil, errors.New("card_declined"))

	_, err := NewStripeGateway(intents).CreateIntent(context.Background(), decimal.NewFromInt(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card_declined")
}
