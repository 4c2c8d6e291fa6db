package strategy

// Linear sells the same amount at every step: quantity / steps.
// It does not depend on price at all, which makes it the baseline the
// other policies are compared against.
type Linear struct{}

func (Linear) Name() string { return "linear" }

func (Linear) Weights(steps int) ([]float64, error) {
	w := make([]float64, steps)
	for i := range w {
		w[i] = 1
	}
	return w, nil
}
