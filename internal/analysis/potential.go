package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"scaleout-planner/internal/model"
)

// ScaleOutPotential is a symbol-level summary you can use for ranking.
// It combines raw price stats over the tick history with a "ceiling"
// proceeds figure: what the position would fetch if the entire quantity
// were sold at the best observed price. The ceiling is an upper bound,
// not a forecast; no ladder can beat it on the same history.
type ScaleOutPotential struct {
	Symbol string
	Market string

	StartUTC time.Time
	EndUTC   time.Time

	Count int

	MinPrice  float64
	MaxPrice  float64
	MeanPrice float64
	P05Price  float64
	P95Price  float64

	SpreadP95P05 float64

	CeilingProceeds float64
}

func ComputePotential(ticks []model.PriceTick, quantity float64) ScaleOutPotential {
	p := ScaleOutPotential{}
	if len(ticks) == 0 {
		return p
	}
	p.Symbol = ticks[0].Symbol
	p.Market = ticks[0].Market
	p.Count = len(ticks)
	p.StartUTC = ticks[0].Timestamp.UTC()
	p.EndUTC = ticks[len(ticks)-1].Timestamp.UTC()

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(ticks))
	for _, it := range ticks {
		v := it.Price
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinPrice = minv
	p.MaxPrice = maxv
	p.MeanPrice = sum / float64(len(vals))
	p.P05Price = percentileSorted(vals, 0.05)
	p.P95Price = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Price - p.P05Price

	p.CeilingProceeds = quantity * maxv
	return p
}

// AutoRange derives a ladder price range from tick-history percentiles.
// The defaults used by callers are loQ=0.05 and hiQ=0.95, which keep the
// ladder inside the recently traded band instead of chasing outliers.
func AutoRange(ticks []model.PriceTick, loQ, hiQ float64) (start, end float64, err error) {
	if len(ticks) == 0 {
		return 0, 0, fmt.Errorf("no ticks")
	}
	if loQ < 0 || hiQ > 1 || loQ >= hiQ {
		return 0, 0, fmt.Errorf("quantiles must satisfy 0 <= lo < hi <= 1, got %g and %g", loQ, hiQ)
	}
	vals := make([]float64, 0, len(ticks))
	for _, it := range ticks {
		vals = append(vals, it.Price)
	}
	sort.Float64s(vals)
	start = percentileSorted(vals, loQ)
	end = percentileSorted(vals, hiQ)
	if start <= 0 || end <= 0 {
		return 0, 0, fmt.Errorf("derived range is non-positive: [%g, %g]", start, end)
	}
	return start, end, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
