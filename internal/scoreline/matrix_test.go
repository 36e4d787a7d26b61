package scoreline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonPMF(t *testing.T) {
	assert.InDelta(t, math.Exp(-1.2), PoissonPMF(1.2, 0), 1e-14)
	assert.InDelta(t, math.Exp(-2)*8/6, PoissonPMF(2, 3), 1e-14)
	assert.Equal(t, 0.0, PoissonPMF(1.5, -1))
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(0, 2))

	total := 0.0
	for k := 0; k < 60; k++ {
		total += PoissonPMF(3.4, k)
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestBuildMatrixSumsToOne(t *testing.T) {
	rates := []float64{0.1, 0.5, 1.1, 1.2, 1.5, 2.3, 3.8, 6.0}
	for _, lh := range rates {
		for _, la := range rates {
			m := BuildMatrix(lh, la, MaxGoals)
			require.Equal(t, MaxGoals+1, m.Size())
			assert.InDelta(t, 1.0, m.Sum(), 1e-9, "lh=%v la=%v", lh, la)
		}
	}
}

func TestBuildMatrixIsOuterProduct(t *testing.T) {
	m := BuildMatrix(1.4, 0.9, MaxGoals)
	// ratios between cells are unaffected by renormalization
	got := m[2][1] / m[1][1]
	want := PoissonPMF(1.4, 2) / PoissonPMF(1.4, 1)
	assert.InDelta(t, want, got, 1e-12)
}

func TestBuildMatrixNegativeBound(t *testing.T) {
	m := BuildMatrix(1.2, 1.2, -3)
	require.Equal(t, 1, m.Size())
	assert.InDelta(t, 1.0, m[0][0], 1e-12)
}

func TestClone(t *testing.T) {
	m := BuildMatrix(1.2, 1.0, 3)
	c := m.Clone()
	c[0][0] = 42
	assert.NotEqual(t, 42.0, m[0][0])
}
