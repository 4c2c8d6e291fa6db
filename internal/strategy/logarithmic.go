package strategy

import "math"

// Logarithmic front-loads the ladder: weights are log(x+1) for x evenly
// spaced over [0.01, 1], reversed so the largest weight lands on the first
// step and shares taper off from there. Suited to selling most of the
// quantity early while keeping some upside exposure for the later steps.
type Logarithmic struct{}

func (Logarithmic) Name() string { return "logarithmic" }

func (Logarithmic) Weights(steps int) ([]float64, error) {
	xs := evenSpaced(0.01, 1, steps)
	w := make([]float64, steps)
	for i, x := range xs {
		// Reversed: the weight for the largest x lands on step 0.
		w[steps-1-i] = math.Log(x + 1)
	}
	return w, nil
}
