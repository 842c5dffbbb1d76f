package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopspring/decimal"

	"hornada/internal/domain"
	"hornada/internal/dto"
	apperrors "hornada/internal/errors"
	"hornada/internal/units"
)

type RecordUseCase interface {
	Record(ctx context.Context, req dto.RecordEntryRequest) (*dto.StockEntryDTO, error)
	History(ctx context.Context, productID string, limit int) ([]dto.StockEntryDTO, error)
}

type ProductionUseCase interface {
	Run(ctx context.Context, productID string, quantityProduced decimal.Decimal) (*dto.ProductionRunResult, error)
}

type LedgerController struct {
	recordUC     RecordUseCase
	productionUC ProductionUseCase
	logger       *zap.Logger
}

func NewLedgerController(recordUC RecordUseCase, productionUC ProductionUseCase, logger *zap.Logger) *LedgerController {
	return &LedgerController{
		recordUC:     recordUC,
		productionUC: productionUC,
		logger:       logger,
	}
}

func (c *LedgerController) HandleRecordEntry(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ProductID == "" {
		c.writeValidationError(w, traceID, "productId is required", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must not be empty",
		})
		return
	}

	entry, err := c.recordUC.Record(r.Context(), req)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, entry)
}

func (c *LedgerController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID := chi.URLParam(r, "productId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := c.recordUC.History(r.Context(), productID, limit)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (c *LedgerController) HandleProductionRun(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ProductionRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ProductID == "" {
		c.writeValidationError(w, traceID, "productId is required", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must not be empty",
		})
		return
	}

	result, err := c.productionUC.Run(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, result)
}

func (c *LedgerController) writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nf.Message,
			"traceId": traceID,
		})
		return
	}

	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		c.writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":       "INSUFFICIENT_STOCK",
			"message":     insufficient.Error(),
			"componentId": insufficient.ComponentID,
			"required":    insufficient.Required,
			"available":   insufficient.Available,
			"traceId":     traceID,
		})
		return
	}

	var negative *domain.NegativeStockRejectedError
	if errors.As(err, &negative) {
		c.writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":     "NEGATIVE_STOCK_REJECTED",
			"message":   negative.Error(),
			"productId": negative.ProductID,
			"traceId":   traceID,
		})
		return
	}

	var missingRecipe *domain.MissingRecipeError
	if errors.As(err, &missingRecipe) {
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "MISSING_RECIPE",
			"message": missingRecipe.Error(),
			"traceId": traceID,
		})
		return
	}

	var broken *domain.BrokenRecipeReferenceError
	if errors.As(err, &broken) {
		logger.Error("broken recipe reference", zap.Error(err))
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "BROKEN_RECIPE_REFERENCE",
			"message": broken.Error(),
			"traceId": traceID,
		})
		return
	}

	var incompatible *units.IncompatibleUnitsError
	if errors.As(err, &incompatible) {
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "INCOMPATIBLE_UNITS",
			"message": incompatible.Error(),
			"traceId": traceID,
		})
		return
	}

	if de, ok := apperrors.IsDeadlockError(err); ok {
		logger.Error("production run exhausted retries", zap.Error(de))
		c.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "DEADLOCK",
			"message": "operation could not be completed, please retry",
			"traceId": traceID,
		})
		return
	}

	logger.Error("ledger request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
		"traceId": traceID,
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	TraceID string                       `json:"traceId"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *LedgerController) writeValidationError(w http.ResponseWriter, traceID, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		TraceID: traceID,
		Details: details,
	})
}

func (c *LedgerController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
