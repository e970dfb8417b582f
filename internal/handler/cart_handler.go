package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Add godoc
// @Summary Add a course to a cart
// @Description Idempotent per (courseId, user).
// @Tags carts
// @Accept json
// @Produce json
// @Param item body model.CartItem true "Cart entry"
// @Success 200 {object} model.CartItem
// @Success 201 {object} model.CartItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var item model.CartItem
	if err := bindAndValidate(c, &item); err != nil {
		return err
	}
	out, created, err := h.cartService.Add(c.Request().Context(), &item)
	if err != nil {
		return failure(err)
	}
	return writeResult(c, created, out)
}

// List godoc
// @Summary List a user's cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param user query string false "User email"
// @Success 200 {array} model.CartItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /carts [get]
func (h *CartHandler) List(c echo.Context) error {
	items, err := h.cartService.List(c.Request().Context(), c.QueryParam("user"))
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Remove godoc
// @Summary Remove a cart entry
// @Tags carts
// @Produce json
// @Param id path string true "Cart entry ObjectID"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /carts/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	id, err := objectID(c)
	if err != nil {
		return err
	}
	n, err := h.cartService.Remove(c.Request().Context(), id)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, model.DeleteResult{DeletedCount: n})
}
