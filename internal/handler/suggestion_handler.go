package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"linkdir/internal/auth"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/service"
	"linkdir/internal/validation"
)

// SuggestionHandler handles pending-submission endpoints.
type SuggestionHandler struct {
	entryService service.EntryService
}

// NewSuggestionHandler creates a new suggestion handler.
func NewSuggestionHandler(entryService service.EntryService) *SuggestionHandler {
	return &SuggestionHandler{entryService: entryService}
}

// List godoc
// @Summary List pending suggestions
// @Tags suggestions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /suggestions [get]
func (h *SuggestionHandler) List(c echo.Context) error {
	suggestions, err := h.entryService.ListSuggestions(c.Request().Context(), auth.ActorFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// Get godoc
// @Summary Get suggestion by id
// @Tags suggestions
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /suggestions/{id} [get]
func (h *SuggestionHandler) Get(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrSuggestionNotFound)
	if err != nil {
		return httpError(err)
	}

	suggestion, err := h.entryService.GetSuggestion(c.Request().Context(), auth.ActorFromContext(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestion": suggestion,
	})
}

// Create godoc
// @Summary Submit a suggestion
// @Description The created record is owned by the caller and pending regardless of the payload's suggestion field.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body validation.CreateEntryRequest true "Suggestion payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /suggestions [post]
func (h *SuggestionHandler) Create(c echo.Context) error {
	var req validation.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	suggestion, err := h.entryService.CreateSuggestion(c.Request().Context(), auth.ActorFromContext(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Suggestion created",
		"suggestion": suggestion,
	})
}

// Patch godoc
// @Summary Update a suggestion
// @Description Owners may edit their suggestion; flipping the suggestion flag (approval) requires admin.
// @Tags suggestions
// @Accept json
// @Param id path string true "Suggestion ID"
// @Param request body validation.PatchEntryRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /suggestions/{id} [patch]
func (h *SuggestionHandler) Patch(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrSuggestionNotFound)
	if err != nil {
		return httpError(err)
	}

	var req validation.PatchEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.entryService.PatchSuggestion(c.Request().Context(), auth.ActorFromContext(c), id, &req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a suggestion
// @Tags suggestions
// @Param id path string true "Suggestion ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /suggestions/{id} [delete]
func (h *SuggestionHandler) Delete(c echo.Context) error {
	id, err := parseID(c, apperrors.ErrSuggestionNotFound)
	if err != nil {
		return httpError(err)
	}

	if err := h.entryService.DeleteSuggestion(c.Request().Context(), auth.ActorFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
