package scoreline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCorrelationSumsToOne(t *testing.T) {
	rhos := []float64{-0.3, -0.2, DefaultRho, 0, 0.05, 0.2}
	rates := []float64{0.1, 0.6, 1.2, 1.9, 3.0}

	for _, rho := range rhos {
		for _, lh := range rates {
			for _, la := range rates {
				m := BuildMatrix(lh, la, MaxGoals)
				c := ApplyCorrelation(m, lh, la, rho)
				assert.InDelta(t, 1.0, c.Sum(), 1e-9, "rho=%v lh=%v la=%v", rho, lh, la)
			}
		}
	}
}

func TestApplyCorrelationDoesNotMutateInput(t *testing.T) {
	m := BuildMatrix(1.5, 1.1, MaxGoals)
	before := m.Clone()

	_ = ApplyCorrelation(m, 1.5, 1.1, DefaultRho)

	assert.Equal(t, before, m)
}

func TestApplyCorrelationShiftsLowScores(t *testing.T) {
	m := BuildMatrix(1.2, 1.2, MaxGoals)
	c := ApplyCorrelation(m, 1.2, 1.2, DefaultRho)

	// negative rho inflates 0-0 and 1-1, deflates 1-0 and 0-1
	assert.Greater(t, c[0][0], m[0][0])
	assert.Greater(t, c[1][1], m[1][1])
	assert.Less(t, c[1][0], m[1][0])
	assert.Less(t, c[0][1], m[0][1])
}

func TestApplyCorrelationZeroRhoIsIdentity(t *testing.T) {
	m := BuildMatrix(1.7, 0.8, MaxGoals)
	c := ApplyCorrelation(m, 1.7, 0.8, 0)
	for i := range m {
		for j := range m[i] {
			assert.InDelta(t, m[i][j], c[i][j], 1e-15)
		}
	}
}

func TestApplyCorrelationZeroMatrix(t *testing.T) {
	m := newMatrix(3)
	c := ApplyCorrelation(m, 1, 1, DefaultRho)
	assert.Equal(t, 0.0, c.Sum())
}
