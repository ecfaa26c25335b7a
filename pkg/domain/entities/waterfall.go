package entities

import "github.com/shopspring/decimal"

// WaterfallComponent is one named, signed step of a waterfall
// decomposition. Components form a chain: each component's FinalValue is
// the next component's BaselineValue, and the last FinalValue equals the
// decomposed target value.
type WaterfallComponent struct {
	Name          string          `json:"name"`
	Order         int             `json:"order"`
	Value         decimal.Decimal `json:"value"`
	IsPositive    bool            `json:"is_positive"`
	BaselineValue decimal.Decimal `json:"baseline_value"`
	FinalValue    decimal.Decimal `json:"final_value"`
}

// The named waterfall drivers, in their fixed accumulation order. Build-up
// decompositions close with the exogenous adjustment; period comparisons
// close with the residual adjustment.
const (
	ComponentBaseDemand = "Demanda base"
	ComponentPromotions = "Promociones"
	ComponentEvents     = "Eventos"
	ComponentExogenous  = "Ajuste exógeno"
	ComponentResidual   = "Ajuste"
)

// ChainIsConsistent reports whether the component chain satisfies the
// waterfall invariants: every FinalValue equals BaselineValue plus Value,
// and adjacent components share their boundary value.
func ChainIsConsistent(components []WaterfallComponent) bool {
	for i, c := range components {
		if !c.FinalValue.Equal(c.BaselineValue.Add(c.Value)) {
			return false
		}
		if i > 0 && !c.BaselineValue.Equal(components[i-1].FinalValue) {
			return false
		}
	}
	return true
}
