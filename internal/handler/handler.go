package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Santo1997/summer-sage-server/internal/auth"
	"github.com/Santo1997/summer-sage-server/internal/errors"
)

// failure converts a service error into an echo HTTP error carrying the
// standard body. The cause is kept as the internal error for logging.
func failure(err error) error {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse()).SetInternal(err)
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error:   true,
		Message: message,
		Code:    code,
	})
}

// bindAndValidate decodes the JSON body into dst and runs the registered validator.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(dst); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func objectID(c echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, failure(errors.ErrInvalidID)
	}
	return id, nil
}

// claims returns the token claims stored by the JWT middleware, or nil.
func claims(c echo.Context) *auth.Claims {
	cl, _ := c.Get(auth.ContextKey).(*auth.Claims)
	return cl
}

func writeResult(c echo.Context, created bool, v interface{}) error {
	if created {
		return c.JSON(http.StatusCreated, v)
	}
	return c.JSON(http.StatusOK, v)
}
