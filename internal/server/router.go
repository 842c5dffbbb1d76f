package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"hornada/internal/catalog"
	ledgercontroller "hornada/internal/ledger/controller"
	"hornada/internal/recipe"
	"hornada/internal/report"
)

func NewRouter(
	catalogCtrl *catalog.Controller,
	recipeCtrl *recipe.Controller,
	ledgerCtrl *ledgercontroller.LedgerController,
	reportCtrl *report.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", catalogCtrl.HandleCreateProduct)
			r.Get("/", catalogCtrl.HandleListProducts)
			r.Get("/low-stock", reportCtrl.HandleLowStock)
			r.Get("/sku/{sku}", catalogCtrl.HandleGetProductBySKU)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", catalogCtrl.HandleGetProduct)
				r.Put("/", catalogCtrl.HandleUpdateProduct)
				r.Post("/deactivate", catalogCtrl.HandleDeactivateProduct)
				r.Put("/recipe", recipeCtrl.HandleSetRecipe)
				r.Get("/recipe", recipeCtrl.HandleGetRecipe)
			})
		})

		r.Route("/stock", func(r chi.Router) {
			r.Post("/entries", ledgerCtrl.HandleRecordEntry)
			r.Get("/entries/{productId}", ledgerCtrl.HandleHistory)
		})

		r.Post("/production-runs", ledgerCtrl.HandleProductionRun)

		r.Get("/reports/inventory", reportCtrl.HandleInventoryReport)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
