package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"linkdir/internal/auth"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/service"
	"linkdir/internal/validation"
)

// EntryHandler handles published entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// List godoc
// @Summary List published entries
// @Tags entries
// @Produce json
// @Param title query string false "Partial title match"
// @Param description query string false "Partial description match"
// @Param category query string false "Category id"
// @Param limit query int false "Result count limit (default 20)"
// @Success 200 {array} service.EntryWithCategory
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	q := service.PublishedEntryQuery{
		Title:       c.QueryParam("title"),
		Description: c.QueryParam("description"),
		Category:    c.QueryParam("category"),
		Limit:       limit,
	}

	entries, err := h.entryService.ListPublished(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Random godoc
// @Summary Get one random published entry
// @Tags entries
// @Produce json
// @Success 200 {object} service.EntryWithCategory
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries/random [get]
func (h *EntryHandler) Random(c echo.Context) error {
	entry, err := h.entryService.Random(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Get godoc
// @Summary Get published entry by id
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} service.EntryWithCategory
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrEntryNotFound)
	if err != nil {
		return httpError(err)
	}

	entry, err := h.entryService.GetPublished(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Create godoc
// @Summary Create a published entry
// @Tags entries
// @Accept json
// @Produce json
// @Param request body validation.CreateEntryRequest true "Entry payload"
// @Success 201 {object} service.EntryWithCategory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	var req validation.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.entryService.CreatePublished(c.Request().Context(), auth.ActorFromContext(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// Patch godoc
// @Summary Update a published entry
// @Tags entries
// @Accept json
// @Param id path string true "Entry ID"
// @Param request body validation.PatchEntryRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /entries/{id} [patch]
func (h *EntryHandler) Patch(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrEntryNotFound)
	if err != nil {
		return httpError(err)
	}

	var req validation.PatchEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.entryService.PatchPublished(c.Request().Context(), auth.ActorFromContext(c), id, &req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a published entry
// @Tags entries
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrEntryNotFound)
	if err != nil {
		return httpError(err)
	}

	if err := h.entryService.DeletePublished(c.Request().Context(), auth.ActorFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
