package ledger

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "hornada/internal/catalog/repository"
	"hornada/internal/config"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/ledger/controller"
	ledgerrepo "hornada/internal/ledger/repository"
	"hornada/internal/ledger/service"
	"hornada/internal/ledger/usecase"
	reciperepo "hornada/internal/recipe/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.LedgerController {
	productRepo := catalogrepo.NewMySQLRepository(db)
	entryRepo := ledgerrepo.NewMySQLEntryRepository(db)
	recipeRepo := reciperepo.NewMySQLRecipeRepository(db)

	ledgerSvc := service.NewLedgerService(
		mysql.NewTxBeginner(db),
		productRepo,
		entryRepo,
		recipeRepo,
		logger,
		cfg.Ledger.ProductionTxTimeout,
	)

	recordUC := usecase.NewRecordUseCase(ledgerSvc, logger)
	productionUC := usecase.NewProductionUseCase(
		productRepo,
		recipeRepo,
		ledgerSvc,
		logger,
		cfg.Ledger.MaxRetryAttempts,
	)

	return controller.NewLedgerController(recordUC, productionUC, logger)
}
