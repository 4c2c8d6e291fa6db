package strategy

import "math"

// Exponential back-loads the ladder: weights are e^x for x evenly spaced
// over [0, 2], so later steps receive disproportionately larger shares.
// Suited to an ascending price ladder, since more is sold at higher prices.
type Exponential struct{}

func (Exponential) Name() string { return "exponential" }

func (Exponential) Weights(steps int) ([]float64, error) {
	xs := evenSpaced(0, 2, steps)
	w := make([]float64, steps)
	for i, x := range xs {
		w[i] = math.Exp(x)
	}
	return w, nil
}
