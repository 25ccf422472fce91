package newmark

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var (
	exampleStructure = model.Structure{Mass: 1000, Omega: 1, Zeta: 0.01}
	exampleDamper    = model.Damper{MassRatio: 0.03, FrequencyRatio: 1.0, Zeta: 0.05}
)

func impulse(steps int, ag float64) []float64 {
	g := make([]float64, steps+1)
	g[0] = ag
	return g
}

func TestParams(t *testing.T) {
	assert.True(t, AverageAcceleration.IsUnconditionallyStable())
	assert.False(t, LinearAcceleration.IsUnconditionallyStable())
	assert.NoError(t, AverageAcceleration.Validate())
	assert.Error(t, Params{Gamma: 0.5, Beta: 0}.Validate())
	assert.Error(t, Params{Gamma: -0.1, Beta: 0.25}.Validate())
}

func TestZeroInputGivesZeroResponse(t *testing.T) {
	sys := model.TMDSystem(exampleStructure, exampleDamper)
	h, err := Integrate(sys, make([]float64, 500), 0.02, AverageAcceleration)
	require.NoError(t, err)
	require.Equal(t, 500, h.Len())

	for i := 0; i < h.Len(); i++ {
		for _, x := range h.State(i) {
			require.Zero(t, x, "step %d", i)
		}
	}
}

func TestEffectiveStiffnessIsSymmetricPositiveDefinite(t *testing.T) {
	cases := []struct {
		name string
		sys  *model.System
		dt   float64
	}{
		{"example", model.TMDSystem(exampleStructure, exampleDamper), 0.01},
		{"undamped", model.TMDSystem(model.Structure{Mass: 5e4, Omega: 3}, model.Damper{MassRatio: 0.01, FrequencyRatio: 0.95}), 0.005},
		{"stiff", model.TMDSystem(model.Structure{Mass: 10, Omega: 300, Zeta: 0.05}, model.Damper{MassRatio: 0.1, FrequencyRatio: 0.9, Zeta: 0.2}), 0.1},
		{"bare", model.BareSystem(exampleStructure), 0.02},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keff := EffectiveStiffness(tc.sys, AverageAcceleration, tc.dt)
			require.True(t, mat.Equal(keff, keff.T()))

			n, _ := keff.Dims()
			sym := mat.NewSymDense(n, nil)
			for i := 0; i < n; i++ {
				for j := i; j < n; j++ {
					sym.SetSym(i, j, keff.At(i, j))
				}
			}
			var eig mat.EigenSym
			require.True(t, eig.Factorize(sym, false))
			for _, v := range eig.Values(nil) {
				assert.Greater(t, v, 0.0)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	sys := model.TMDSystem(exampleStructure, exampleDamper)
	ground := make([]float64, 400)
	for i := range ground {
		ground[i] = math.Sin(0.05*float64(i)) * math.Exp(-0.005*float64(i))
	}

	first, err := Integrate(sys, ground, 0.01, AverageAcceleration)
	require.NoError(t, err)
	second, err := Integrate(sys, ground, 0.01, AverageAcceleration)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestUndampedEnergyConserved(t *testing.T) {
	sys := model.TMDSystem(
		model.Structure{Mass: 1000, Omega: 1, Zeta: 0},
		model.Damper{MassRatio: 0.03, FrequencyRatio: 1.0, Zeta: 0},
	)
	h, err := Integrate(sys, impulse(2000, 1.0), 0.01, AverageAcceleration)
	require.NoError(t, err)

	// the pulse acts over the first step only, afterwards the system is free
	e0 := sys.Energy(h.U[1], h.V[1])
	require.Greater(t, e0, 0.0)
	for i := 2; i < h.Len(); i++ {
		e := sys.Energy(h.U[i], h.V[i])
		require.InEpsilon(t, e0, e, 1e-9, "step %d", i)
	}
}

func TestTwoSampleRecord(t *testing.T) {
	sys := model.TMDSystem(exampleStructure, exampleDamper)
	h, err := Integrate(sys, []float64{0.5, 0}, 0.01, AverageAcceleration)
	require.NoError(t, err)
	require.Equal(t, 2, h.Len())
	assert.Len(t, h.State(1), 6)
	assert.NotZero(t, h.U[1][0])
}

func TestExampleResponse(t *testing.T) {
	sys := model.TMDSystem(exampleStructure, exampleDamper)

	h, err := Integrate(sys, impulse(10, 1.0), 0.01, AverageAcceleration)
	require.NoError(t, err)
	require.Equal(t, 11, h.Len())

	// initial state at rest, acceleration opposite the ground pulse
	want := []float64{0, 0, 0, 0, -1, 0}
	for i, x := range h.State(0) {
		assert.InDelta(t, want[i], x, 1e-12, "component %d", i)
	}

	// K_eff·u1 = M·a0 solved by hand for this system
	assert.InEpsilon(t, -2.49969e-5, h.U[1][0], 1e-4)
	assert.Less(t, math.Abs(h.U[1][1]), 1e-8)

	// long run: decaying oscillation of the structure
	long, err := Integrate(sys, impulse(3000, 1.0), 0.01, AverageAcceleration)
	require.NoError(t, err)
	xs := Channel(long.U, 0)

	dt := 0.01
	period := int(2 * math.Pi / dt)
	first := peakAbs(xs[:period])
	last := peakAbs(xs[len(xs)-period:])
	assert.Less(t, last, first)

	crossings := 0
	for i := 1; i < len(xs); i++ {
		if xs[i-1]*xs[i] < 0 {
			crossings++
		}
	}
	assert.GreaterOrEqual(t, crossings, 6)
}

func TestSingleDegreeOfFreedomAmplitude(t *testing.T) {
	s := model.Structure{Mass: 1, Omega: 1, Zeta: 0}
	sys := model.BareSystem(s)
	h, err := Integrate(sys, impulse(1300, 1.0), 0.01, AverageAcceleration)
	require.NoError(t, err)

	// free vibration after the first step has amplitude sqrt(2E/k)
	e := sys.Energy(h.U[1], h.V[1])
	want := math.Sqrt(2 * e / s.Stiffness())
	assert.InEpsilon(t, want, peakAbs(Channel(h.U, 0)), 1e-3)
}

func TestIntegrateErrors(t *testing.T) {
	sys := model.TMDSystem(exampleStructure, exampleDamper)

	_, err := Integrate(sys, []float64{0, 0}, 0, AverageAcceleration)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = Integrate(sys, nil, 0.01, AverageAcceleration)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Integrate(sys, []float64{0, 0}, 0.01, Params{Gamma: 0.5})
	assert.Error(t, err)

	massless := model.TMDSystem(model.Structure{Mass: 0, Omega: 1}, exampleDamper)
	_, err = Integrate(massless, []float64{1, 0}, 0.01, AverageAcceleration)
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func peakAbs(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		m = math.Max(m, math.Abs(x))
	}
	return m
}
