package analysis

import (
	"sort"

	"scaleout-planner/internal/model"
)

type RankedPotential struct {
	ScaleOutPotential
}

// RankByCeiling computes potentials per symbol and sorts descending by
// CeilingProceeds.
func RankByCeiling(bySymbol map[string][]model.PriceTick, quantity float64) []RankedPotential {
	out := make([]RankedPotential, 0, len(bySymbol))
	for _, ticks := range bySymbol {
		p := ComputePotential(ticks, quantity)
		out = append(out, RankedPotential{ScaleOutPotential: p})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CeilingProceeds > out[j].CeilingProceeds
	})
	return out
}
