package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hornada/internal/units"
)

func TestProduct_IsComposite(t *testing.T) {
	assert.False(t, Product{Type: ProductTypeInsumo}.IsComposite())
	assert.True(t, Product{Type: ProductTypeSemiElaborado}.IsComposite())
	assert.True(t, Product{Type: ProductTypeTerminado}.IsComposite())
}

func TestProduct_IsLowStock(t *testing.T) {
	p := Product{
		MeasureUnit:  units.KG,
		CurrentStock: decimal.NewFromInt(2),
		MinStock:     decimal.NewFromInt(5),
	}
	assert.True(t, p.IsLowStock())

	p.CurrentStock = decimal.NewFromInt(5)
	assert.True(t, p.IsLowStock(), "stock equal to minimum is low")

	p.CurrentStock = decimal.NewFromInt(6)
	assert.False(t, p.IsLowStock())
}

func TestValidProductType(t *testing.T) {
	assert.True(t, ValidProductType(ProductTypeInsumo))
	assert.True(t, ValidProductType(ProductTypeSemiElaborado))
	assert.True(t, ValidProductType(ProductTypeTerminado))
	assert.False(t, ValidProductType("BEBIDA"))
	assert.False(t, ValidProductType(""))
}

func TestValidReason(t *testing.T) {
	for _, reason := range []string{
		ReasonReceipt, ReasonProductionConsume, ReasonProductionYield, ReasonSale, ReasonAdjustment,
	} {
		assert.True(t, ValidReason(reason), reason)
	}
	assert.False(t, ValidReason("TRANSFER"))
}
