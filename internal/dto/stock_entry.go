package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordEntryRequest struct {
	ProductID   string          `json:"productId"`
	Delta       decimal.Decimal `json:"delta"`
	Reason      string          `json:"reason"`
	ReferenceID *string         `json:"referenceId"`
}

type StockEntryDTO struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Delta        decimal.Decimal `json:"delta"`
	Reason       string          `json:"reason"`
	ReferenceID  *string         `json:"referenceId,omitempty"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CreatedAt    time.Time       `json:"createdAt"`
}
