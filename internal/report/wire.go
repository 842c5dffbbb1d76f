package report

import (
	"database/sql"

	"go.uber.org/zap"

	"hornada/internal/report/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	loader := repository.NewMySQLSnapshotRepository(db)
	svc := NewService(loader, logger)
	return NewController(svc, logger)
}
