package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"linkdir/internal/auth"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/repository"
	"linkdir/internal/service"
	"linkdir/internal/validation"
)

// UserHandler handles user administration endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param username query string false "Case-insensitive partial username match"
// @Param role query string false "Exact role match"
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor := auth.ActorFromContext(c)
	filter := repository.UserFilter{
		Username: c.QueryParam("username"),
		Role:     c.QueryParam("role"),
	}

	users, err := h.userService.List(c.Request().Context(), actor, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrUserNotFound)
	if err != nil {
		return httpError(err)
	}

	user, err := h.userService.Get(c.Request().Context(), auth.ActorFromContext(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Patch godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body validation.PatchUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *UserHandler) Patch(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrUserNotFound)
	if err != nil {
		return httpError(err)
	}

	var req validation.PatchUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Patch(c.Request().Context(), auth.ActorFromContext(c), id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrUserNotFound)
	if err != nil {
		return httpError(err)
	}

	if err := h.userService.Delete(c.Request().Context(), auth.ActorFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
