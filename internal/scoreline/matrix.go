// Package scoreline turns expected goal rates into scoreline distributions
// and betting-market probabilities.
package scoreline

import "math"

// MaxGoals is the highest goal count per side kept in a matrix
const MaxGoals = 10

// Matrix is a square joint distribution of scorelines.
// Matrix[i][j] is the probability of home i, away j.
type Matrix [][]float64

// PoissonPMF returns P(X = k) for X ~ Poisson(lambda), computed in log space.
func PoissonPMF(lambda float64, k int) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(-lambda + float64(k)*math.Log(lambda) - lg)
}

// BuildMatrix builds the independent-Poisson scoreline matrix for the two
// rates, truncated at maxGoals and renormalized to sum to 1.
func BuildMatrix(lambdaHome, lambdaAway float64, maxGoals int) Matrix {
	if maxGoals < 0 {
		maxGoals = 0
	}
	n := maxGoals + 1

	home := make([]float64, n)
	away := make([]float64, n)
	for k := 0; k < n; k++ {
		home[k] = PoissonPMF(lambdaHome, k)
		away[k] = PoissonPMF(lambdaAway, k)
	}

	m := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m[i][j] = home[i] * away[j]
		}
	}
	m.normalize()
	return m
}

func newMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Size returns the number of rows
func (m Matrix) Size() int {
	return len(m)
}

// Sum returns the total probability mass
func (m Matrix) Sum() float64 {
	total := 0.0
	for _, row := range m {
		for _, p := range row {
			total += p
		}
	}
	return total
}

// Clone returns a deep copy
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// normalize scales in place so the matrix sums to 1. A zero matrix is left as is.
func (m Matrix) normalize() {
	total := m.Sum()
	if total <= 0 {
		return
	}
	for _, row := range m {
		for j := range row {
			row[j] /= total
		}
	}
}
