package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"linkdir/internal/auth"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/service"
	"linkdir/internal/validation"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param title query string false "Partial title match"
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return httpError(err)
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body validation.CreateCategoryRequest true "Category payload"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req validation.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.categoryService.Create(c.Request().Context(), auth.ActorFromContext(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Patch godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body validation.PatchCategoryRequest true "Fields to update"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [patch]
func (h *CategoryHandler) Patch(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return httpError(err)
	}

	var req validation.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.categoryService.Patch(c.Request().Context(), auth.ActorFromContext(c), id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return httpError(err)
	}

	if err := h.categoryService.Delete(c.Request().Context(), auth.ActorFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
