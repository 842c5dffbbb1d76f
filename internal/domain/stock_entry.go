package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReasonReceipt           = "RECEIPT"
	ReasonProductionConsume = "PRODUCTION_CONSUME"
	ReasonProductionYield   = "PRODUCTION_YIELD"
	ReasonSale              = "SALE"
	ReasonAdjustment        = "ADJUSTMENT"
)

// StockEntry is an immutable fact in the append-only stock ledger.
// Delta is signed and expressed in the product's own measureUnit.
// Corrections are new offsetting entries, never edits.
type StockEntry struct {
	ID          string
	ProductID   string
	Delta       decimal.Decimal
	Reason      string
	ReferenceID *string
	CreatedAt   time.Time
}

func ValidReason(r string) bool {
	switch r {
	case ReasonReceipt, ReasonProductionConsume, ReasonProductionYield,
		ReasonSale, ReasonAdjustment:
		return true
	}
	return false
}
