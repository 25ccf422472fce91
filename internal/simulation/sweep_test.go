package simulation

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatios(t *testing.T) {
	assert.Nil(t, Ratios(0.8, 1.2, 0))
	assert.Equal(t, []float64{0.9}, Ratios(0.9, 1.1, 1))

	r := Ratios(0.8, 1.2, 5)
	require.Len(t, r, 5)
	assert.Equal(t, 0.8, r[0])
	assert.Equal(t, 1.2, r[4])
	assert.InDelta(t, 1.0, r[2], 1e-12)
}

func TestSweep(t *testing.T) {
	// harmonic base motion at the structure's natural frequency
	times := make([]float64, 2000)
	accels := make([]float64, 2000)
	for i := range times {
		times[i] = float64(i) * 0.02
		accels[i] = 0.05 * math.Sin(times[i])
	}
	rec, err := motion.NewRecord("resonant", times, accels)
	require.NoError(t, err)

	points, err := Sweep(rec, params(), []float64{0.5, 0.97, 2.0})
	require.NoError(t, err)
	require.Len(t, points, 3)
	for i, alpha := range []float64{0.5, 0.97, 2.0} {
		assert.Equal(t, alpha, points[i].FrequencyRatio)
		assert.Positive(t, points[i].Summary.MaxFloorDisp)
	}

	// a damper tuned near resonance beats badly detuned ones
	assert.Equal(t, 1, Best(points))
}

func TestSweepErrors(t *testing.T) {
	rec := motion.Impulse(0.01, 5, 0.1)

	_, err := Sweep(rec, params(), nil)
	assert.ErrorIs(t, err, ErrEmptySweep)

	_, err = Sweep(rec, params(), []float64{1, -1})
	assert.Error(t, err)
}
