package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"hornada/internal/catalog/repository"
)

func NewModule(db *sql.DB, refresher CostRefresher, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRepository(db)
	svc := NewService(repo, refresher, logger)
	uc := NewUseCase(svc)
	return NewController(uc, logger)
}
