package plan

// Linspace returns n prices evenly spaced over [start, end] inclusive.
// n == 1 returns [start]. start > end yields a descending ladder.
func Linspace(start, end float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Pin the endpoint so rounding in the increment cannot drift past it.
	out[n-1] = end
	return out
}
