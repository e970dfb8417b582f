package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/gateway"
	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
)

// PaymentService handles payment intents and payment records.
type PaymentService interface {
	List(ctx context.Context, email string) ([]model.Payment, error)
	CreateIntent(ctx context.Context, price decimal.Decimal) (string, error)
	Record(ctx context.Context, payment *model.Payment) (primitive.ObjectID, error)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway gateway.PaymentGateway
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repo repository.PaymentRepository, gw gateway.PaymentGateway, log logrus.FieldLogger) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		log:     log,
		now:     time.Now,
	}
}

func (s *paymentService) List(ctx context.Context, email string) ([]model.Payment, error) {
	return s.repo.List(ctx, email)
}

// CreateIntent asks the gateway for a card intent of price and returns its client secret.
func (s *paymentService) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return "", apperrors.ErrInvalidAmount
	}
	secret, err := s.gateway.CreateIntent(ctx, price)
	if err != nil {
		return "", err
	}
	s.log.WithField("amount", price.StringFixed(2)).Info("payment intent created")
	return secret, nil
}

// Record stores the payment as reported by the client. Carts and enrollment
// counts are not touched here.
func (s *paymentService) Record(ctx context.Context, payment *model.Payment) (primitive.ObjectID, error) {
	if payment.Date.IsZero() {
		payment.Date = s.now().UTC()
	}
	id, err := s.repo.Insert(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"email":          payment.Email,
		"transaction_id": payment.TransactionID,
	}).Info("payment recorded")
	return id, nil
}
