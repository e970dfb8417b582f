package gateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
)

// Currency is the only currency intents are created in.
const Currency = "usd"

// PaymentIntents is the subset of the Stripe PaymentIntents API the service uses.
type PaymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// PaymentGateway creates payment intents and hands back the client secret.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, price decimal.Decimal) (string, error)
}

// StripeGateway forwards intents to Stripe.
type StripeGateway struct {
	intents PaymentIntents
}

// NewStripe builds a gateway from a secret key.
func NewStripe(secretKey string) *StripeGateway {
	api := &stripecl.API{}
	api.Init(secretKey, nil)
	return NewStripeGateway(api.PaymentIntents)
}

// NewStripeGateway wraps an existing PaymentIntents client.
func NewStripeGateway(intents PaymentIntents) *StripeGateway {
	return &StripeGateway{intents: intents}
}

// ToMinorUnits converts a major-unit price to cents, rounding half away from zero.
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateIntent creates a card PaymentIntent for price and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", apperrors.ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("creating stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
