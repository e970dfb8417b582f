package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// IntentRequest carries a price in major currency units.
type IntentRequest struct {
	Price decimal.Decimal `json:"price" swaggertype:"number"`
}

// IntentResponse carries the client secret of a created payment intent.
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// List godoc
// @Summary List payments
// @Description Newest first, optionally for one payer.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Payer email"
// @Success 200 {array} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Router /allPayments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.paymentService.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// CreateIntent godoc
// @Summary Create a card payment intent
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IntentRequest true "Price"
// @Success 200 {object} IntentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req IntentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	secret, err := h.paymentService.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, IntentResponse{ClientSecret: secret})
}

// Record godoc
// @Summary Record a completed payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body model.Payment true "Payment"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	var payment model.Payment
	if err := bindAndValidate(c, &payment); err != nil {
		return err
	}
	id, err := h.paymentService.Record(c.Request().Context(), &payment)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusCreated, model.InsertResult{InsertedID: id})
}
