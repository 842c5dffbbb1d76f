package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hornada/internal/domain"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleInventoryReport(w http.ResponseWriter, r *http.Request) {
	rep, err := c.service.InventoryReport(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}
	if rep.LowStockItems == nil {
		rep.LowStockItems = []LowStockItem{}
	}
	c.writeJSON(w, http.StatusOK, rep)
}

func (c *Controller) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.LowStock(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}
	if items == nil {
		items = []LowStockItem{}
	}
	c.writeJSON(w, http.StatusOK, items)
}

func (c *Controller) writeError(w http.ResponseWriter, err error) {
	var broken *domain.BrokenRecipeReferenceError
	if errors.As(err, &broken) {
		// Data integrity problem; surfaced, never valued as zero.
		c.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "BROKEN_RECIPE_REFERENCE",
			"message": broken.Error(),
		})
		return
	}

	c.logger.Error("report request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
