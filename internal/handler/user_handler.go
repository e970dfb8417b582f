package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RoleResponse answers whether the caller owns the queried email and its role.
type RoleResponse struct {
	Match bool       `json:"match"`
	Role  model.Role `json:"role"`
}

// UpdateRoleRequest carries the new role of a user.
type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// Register godoc
// @Summary Register a user on first sign-in
// @Description Idempotent by email: an existing user is returned unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.User true "User payload"
// @Success 200 {object} model.User
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /allusers [post]
func (h *UserHandler) Register(c echo.Context) error {
	var user model.User
	if err := bindAndValidate(c, &user); err != nil {
		return err
	}
	out, created, err := h.svc.Register(c.Request().Context(), &user)
	if err != nil {
		return failure(err)
	}
	return writeResult(c, created, out)
}

// Teachers godoc
// @Summary List instructors
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /teachers [get]
func (h *UserHandler) Teachers(c echo.Context) error {
	users, err := h.svc.Teachers(c.Request().Context())
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Teacher godoc
// @Summary Find users by email
// @Description Without the user parameter every user is returned.
// @Tags users
// @Produce json
// @Param user query string false "Email"
// @Success 200 {array} model.User
// @Router /teacher [get]
func (h *UserHandler) Teacher(c echo.Context) error {
	users, err := h.svc.ByEmail(c.Request().Context(), c.QueryParam("user"))
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, users)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Role godoc
// @Summary Role of the signed-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} RoleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/role/{email} [get]
func (h *UserHandler) Role(c echo.Context) error {
	email := c.Param("email")
	cl := claims(c)
	if cl == nil || cl.Email != email {
		return c.JSON(http.StatusOK, RoleResponse{})
	}
	role, err := h.svc.Role(c.Request().Context(), email)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, RoleResponse{Match: true, Role: role})
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ObjectID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /updateUser/{id} [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := objectID(c)
	if err != nil {
		return err
	}
	var req UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, user)
}
