package report

import "github.com/shopspring/decimal"

type LowStockItem struct {
	ProductID    string          `json:"productId"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	MeasureUnit  string          `json:"measureUnit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
}

type CategoryStock struct {
	Type       string          `json:"type"`
	Count      int             `json:"count"`
	TotalStock decimal.Decimal `json:"totalStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type InventoryReport struct {
	TotalValue      decimal.Decimal `json:"totalValue"`
	TotalProducts   int             `json:"totalProducts"`
	StockByCategory []CategoryStock `json:"stockByCategory"`
	LowStockItems   []LowStockItem  `json:"lowStockItems"`
}
