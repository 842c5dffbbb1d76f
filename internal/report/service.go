package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hornada/internal/costing"
	"hornada/internal/domain"
)

type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (costing.Snapshot, error)
}

type Service struct {
	loader SnapshotLoader
	logger *zap.Logger
}

func NewService(loader SnapshotLoader, logger *zap.Logger) *Service {
	return &Service{loader: loader, logger: logger}
}

// Evaluate returns every active product at or below its minimum stock,
// most critical first (ascending currentStock − minStock). Pure over
// the snapshot; the dashboard polls it after ledger activity.
func Evaluate(snap costing.Snapshot) []LowStockItem {
	var items []LowStockItem
	for _, p := range snap.Products {
		if !p.IsActive || !p.IsLowStock() {
			continue
		}
		items = append(items, LowStockItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			MeasureUnit:  string(p.MeasureUnit),
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		di := items[i].CurrentStock.Sub(items[i].MinStock)
		dj := items[j].CurrentStock.Sub(items[j].MinStock)
		if !di.Equal(dj) {
			return di.Cmp(dj) < 0
		}
		return items[i].SKU < items[j].SKU
	})
	return items
}

// BuildReport values the whole catalog at roll-up cost over one
// snapshot: totalValue, per-type aggregates and the low-stock list.
func BuildReport(snap costing.Snapshot) (*InventoryReport, error) {
	calc := costing.NewCalculator(snap)

	totalValue := decimal.Zero
	byType := map[string]*CategoryStock{
		domain.ProductTypeInsumo:        {Type: domain.ProductTypeInsumo, TotalStock: decimal.Zero, TotalValue: decimal.Zero},
		domain.ProductTypeSemiElaborado: {Type: domain.ProductTypeSemiElaborado, TotalStock: decimal.Zero, TotalValue: decimal.Zero},
		domain.ProductTypeTerminado:     {Type: domain.ProductTypeTerminado, TotalStock: decimal.Zero, TotalValue: decimal.Zero},
	}

	for id, p := range snap.Products {
		cost, err := calc.UnitCost(id)
		if err != nil {
			return nil, err
		}
		value := p.CurrentStock.Mul(cost)
		totalValue = totalValue.Add(value)

		group, ok := byType[p.Type]
		if !ok {
			group = &CategoryStock{Type: p.Type, TotalStock: decimal.Zero, TotalValue: decimal.Zero}
			byType[p.Type] = group
		}
		group.Count++
		group.TotalStock = group.TotalStock.Add(p.CurrentStock)
		group.TotalValue = group.TotalValue.Add(value)
	}

	categories := make([]CategoryStock, 0, len(byType))
	for _, group := range byType {
		categories = append(categories, *group)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Type < categories[j].Type })

	return &InventoryReport{
		TotalValue:      totalValue,
		TotalProducts:   len(snap.Products),
		StockByCategory: categories,
		LowStockItems:   Evaluate(snap),
	}, nil
}

func (s *Service) LowStock(ctx context.Context) ([]LowStockItem, error) {
	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Evaluate(snap), nil
}

func (s *Service) InventoryReport(ctx context.Context) (*InventoryReport, error) {
	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := BuildReport(snap)
	if err != nil {
		s.logger.Error("inventory report failed", zap.Error(err))
		return nil, err
	}
	return rep, nil
}
