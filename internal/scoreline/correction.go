package scoreline

// DefaultRho is the low-score correlation parameter. Negative values move
// mass away from 0-0 and 1-1 towards 1-0 and 0-1.
const DefaultRho = -0.10

// ApplyCorrelation returns a copy of m with the four low-score cells scaled
// by the Dixon-Coles factors and the result renormalized. m is not modified.
func ApplyCorrelation(m Matrix, lambdaHome, lambdaAway, rho float64) Matrix {
	out := m.Clone()

	tau00 := 1.0 - (lambdaHome+lambdaAway)*rho
	tau01 := 1.0 + lambdaHome*rho
	tau10 := 1.0 + lambdaAway*rho
	tau11 := 1.0 - rho

	scale := func(i, j int, f float64) {
		if i < len(out) && j < len(out[i]) {
			out[i][j] *= f
		}
	}
	scale(0, 0, tau00)
	scale(0, 1, tau01)
	scale(1, 0, tau10)
	scale(1, 1, tau11)

	out.normalize()
	return out
}
