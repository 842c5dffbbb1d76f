package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is one of the fixed measurement units used across the catalog.
type Unit string

const (
	UN  Unit = "UN"  // unidad
	KG  Unit = "KG"  // kilogramo
	GR  Unit = "GR"  // gramo
	LT  Unit = "LT"  // litro
	ML  Unit = "ML"  // mililitro
	DOC Unit = "DOC" // docena
	PZA Unit = "PZA" // pieza
)

type dimension int

const (
	mass dimension = iota
	volume
	count
)

// factor converts a unit to its dimension's base unit (GR, ML, UN).
var table = map[Unit]struct {
	dim    dimension
	factor decimal.Decimal
}{
	GR:  {mass, decimal.NewFromInt(1)},
	KG:  {mass, decimal.NewFromInt(1000)},
	ML:  {volume, decimal.NewFromInt(1)},
	LT:  {volume, decimal.NewFromInt(1000)},
	UN:  {count, decimal.NewFromInt(1)},
	DOC: {count, decimal.NewFromInt(12)},
	PZA: {count, decimal.NewFromInt(1)},
}

type IncompatibleUnitsError struct {
	From Unit
	To   Unit
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: incompatible units", e.From, e.To)
}

// Parse validates a raw unit string coming from a request or a stored row.
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := table[u]; !ok {
		return "", fmt.Errorf("unknown measure unit %q", s)
	}
	return u, nil
}

// Compatible reports whether two units share a dimension class.
func Compatible(from, to Unit) bool {
	f, okF := table[from]
	t, okT := table[to]
	return okF && okT && f.dim == t.dim
}

// Convert expresses qty (given in from) in to. Units of different
// dimension classes never convert. No rounding is applied beyond
// decimal division precision; display rounding is the caller's problem.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	f, okF := table[from]
	t, okT := table[to]
	if !okF || !okT || f.dim != t.dim {
		return decimal.Zero, &IncompatibleUnitsError{From: from, To: to}
	}
	if from == to {
		return qty, nil
	}
	return qty.Mul(f.factor).Div(t.factor), nil
}
