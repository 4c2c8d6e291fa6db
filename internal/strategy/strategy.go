package strategy

import "fmt"

// Strategy produces raw per-step weights for a scale-out ladder.
// Weights do not need to sum to 1; Allocate normalizes them.
type Strategy interface {
	Name() string
	Weights(steps int) ([]float64, error)
}

// Allocate turns a total quantity into per-step sale amounts using the
// strategy's weights. Each weight is divided by the weight sum, so the
// returned amounts sum to quantity up to floating-point rounding.
func Allocate(s Strategy, quantity float64, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be >= 1, got %d", steps)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0, got %g", quantity)
	}

	w, err := s.Weights(steps)
	if err != nil {
		return nil, err
	}
	if len(w) != steps {
		return nil, fmt.Errorf("strategy %q returned %d weights for %d steps", s.Name(), len(w), steps)
	}

	sum := 0.0
	for _, wi := range w {
		sum += wi
	}
	// All shipped policies produce strictly positive weights for steps >= 1,
	// so normalization never divides by zero.
	if sum <= 0 {
		return nil, fmt.Errorf("strategy %q produced non-positive weight sum", s.Name())
	}

	amounts := make([]float64, steps)
	for i, wi := range w {
		amounts[i] = quantity * wi / sum
	}
	return amounts, nil
}

// ForName returns the strategy registered under name.
func ForName(name string) (Strategy, error) {
	switch name {
	case "linear":
		return Linear{}, nil
	case "exponential":
		return Exponential{}, nil
	case "logarithmic":
		return Logarithmic{}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Names lists the registered strategy names in presentation order.
func Names() []string {
	return []string{"linear", "exponential", "logarithmic"}
}

// evenSpaced returns n values evenly spaced over [start, end] inclusive.
// n == 1 returns [start].
func evenSpaced(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
