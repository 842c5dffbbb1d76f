package recipe

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hornada/internal/domain"
	apperrors "hornada/internal/errors"
	"hornada/internal/units"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleSetRecipe(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req SetRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if len(req.Lines) == 0 {
		c.writeValidationError(w, "lines are required", apperrors.ValidationDetail{
			Field:   "lines",
			Message: "a recipe needs at least one line",
		})
		return
	}

	dto, err := c.useCase.SetRecipe(r.Context(), productID, req)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto)
}

func (c *Controller) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	dto, err := c.useCase.GetRecipe(r.Context(), productID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto)
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nf.Message,
		})
		return
	}

	var unknown *domain.UnknownComponentError
	if errors.As(err, &unknown) {
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "UNKNOWN_COMPONENT",
			"message": unknown.Error(),
		})
		return
	}

	var incompatible *units.IncompatibleUnitsError
	if errors.As(err, &incompatible) {
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "INCOMPATIBLE_UNITS",
			"message": incompatible.Error(),
		})
		return
	}

	var cyclic *domain.CyclicRecipeError
	if errors.As(err, &cyclic) {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CYCLIC_RECIPE",
			"message": cyclic.Error(),
		})
		return
	}

	c.logger.Error("recipe request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
