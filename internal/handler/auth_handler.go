package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/service"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest identifies the signed-in user.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken godoc
// @Summary Issue an access token
// @Description Signs a one-hour bearer token for the posted email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Identity"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	token, err := h.authService.IssueToken(req.Email, req.Name)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
