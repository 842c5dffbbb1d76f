package recipe

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "hornada/internal/catalog/repository"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/recipe/repository"
)

func NewModule(db *sql.DB, refresher CostRefresher, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRecipeRepository(db)
	products := catalogrepo.NewMySQLRepository(db)
	svc := NewService(mysql.NewTxBeginner(db), repo, products, refresher, logger)
	uc := NewUseCase(svc)
	return NewController(uc, logger)
}
