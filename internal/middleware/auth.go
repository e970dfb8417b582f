package middleware

import (
	"context"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/auth"
	"github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
)

// RoleResolver looks up the role of a user by email. An unknown email
// resolves to the empty role.
type RoleResolver interface {
	Role(ctx context.Context, email string) (model.Role, error)
}

// JWT validates the bearer token with jwtService and stores the claims under
// auth.ContextKey. Any failure ends the request with 401.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(_ echo.Context, _ error) error {
			return deny(http.StatusUnauthorized, errors.ErrUnauthorized, "UNAUTHORIZED")
		},
	})
}

// RequireAdmin lets the request through only when the caller's role is admin.
// It must run after JWT.
func RequireAdmin(roles RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(auth.ContextKey).(*auth.Claims)
			if !ok || claims == nil {
				return deny(http.StatusUnauthorized, errors.ErrUnauthorized, "UNAUTHORIZED")
			}
			role, err := roles.Role(c.Request().Context(), claims.Email)
			if err != nil {
				he := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse()).SetInternal(err)
			}
			if role != model.RoleAdmin {
				return deny(http.StatusForbidden, errors.ErrForbidden, "FORBIDDEN")
			}
			return next(c)
		}
	}
}

func deny(status int, reason error, code string) error {
	return echo.NewHTTPError(status, errors.ErrorResponse{
		Error:   true,
		Message: reason.Error(),
		Code:    code,
	})
}
