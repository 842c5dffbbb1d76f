package costing

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (Snapshot, error)
}

type CostWriter interface {
	UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal) error
}

// Refresher keeps the cached costPrice of every composite product in
// sync with the roll-up result. It runs after a recipe edit and after
// an ingredient cost edit.
type Refresher struct {
	loader SnapshotLoader
	writer CostWriter
	logger *zap.Logger
}

func NewRefresher(loader SnapshotLoader, writer CostWriter, logger *zap.Logger) *Refresher {
	return &Refresher{loader: loader, writer: writer, logger: logger}
}

func (r *Refresher) RefreshAll(ctx context.Context) error {
	snap, err := r.loader.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	calc := NewCalculator(snap)
	refreshed := 0
	for id, p := range snap.Products {
		if !p.IsComposite() {
			continue
		}
		cost, err := calc.UnitCost(id)
		if err != nil {
			return err
		}
		if cost.Equal(p.CostPrice) {
			continue
		}
		if err := r.writer.UpdateCostPrice(ctx, id, cost); err != nil {
			return err
		}
		refreshed++
	}

	if refreshed > 0 {
		r.logger.Info("composite cost cache refreshed", zap.Int("products", refreshed))
	}
	return nil
}
