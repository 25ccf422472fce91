package simulation

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/newmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params() Params {
	return Params{
		Structure: model.Structure{Mass: 1000, Omega: 1, Zeta: 0.01},
		Damper:    model.Damper{MassRatio: 0.03, FrequencyRatio: 1.0, Zeta: 0.05},
		Newmark:   newmark.AverageAcceleration,
		Gravity:   9.81,
	}
}

func TestRun(t *testing.T) {
	rec := motion.Impulse(0.01, 10, 1.0/9.81)
	p := params()
	p.Compare = true

	res, err := Run(rec, p)
	require.NoError(t, err)

	assert.Equal(t, 11, res.History.Len())
	assert.Len(t, res.Report.Rows, 11)
	assert.InDelta(t, 1.0, res.Report.Summary.MaxGroundAccel, 1e-12)
	assert.InDelta(t, 30, res.Coefficients.Md, 1e-12)
	require.NotNil(t, res.Comparison)
	assert.Len(t, res.Comparison.BareFloorDisp, 11)

	p.Compare = false
	res, err = Run(rec, p)
	require.NoError(t, err)
	assert.Nil(t, res.Comparison)
}

func TestRunZeroRecord(t *testing.T) {
	rec, err := motion.NewRecord("quiet", []float64{0, 0.02, 0.04, 0.06}, make([]float64, 4))
	require.NoError(t, err)

	res, err := Run(rec, params())
	require.NoError(t, err)
	for _, row := range res.Report.Rows {
		for _, v := range row.Values()[1:] {
			require.Zero(t, v)
		}
	}
	assert.Zero(t, res.Report.Summary.MaxFloorDisp)
}

func TestRunErrors(t *testing.T) {
	rec := motion.Impulse(0.01, 5, 0.1)

	p := params()
	p.Structure.Mass = 0
	_, err := Run(rec, p)
	assert.Error(t, err)

	p = params()
	p.Damper.FrequencyRatio = 0
	_, err = Run(rec, p)
	assert.Error(t, err)

	p = params()
	p.Gravity = 0
	_, err = Run(rec, p)
	assert.Error(t, err)

	p = params()
	p.Newmark = newmark.Params{Gamma: 0.5, Beta: -1}
	_, err = Run(rec, p)
	assert.Error(t, err)

	_, err = Run(&motion.Record{Samples: []motion.Sample{{Time: 0}}}, params())
	assert.ErrorIs(t, err, motion.ErrTooFewSamples)
}

func TestRunDeterministic(t *testing.T) {
	times := make([]float64, 300)
	accels := make([]float64, 300)
	for i := range times {
		times[i] = float64(i) * 0.02
		accels[i] = 0.2 * math.Sin(3*times[i]) * math.Exp(-times[i]/4)
	}
	rec, err := motion.NewRecord("decay", times, accels)
	require.NoError(t, err)

	a, err := Run(rec, params())
	require.NoError(t, err)
	b, err := Run(rec, params())
	require.NoError(t, err)
	assert.Equal(t, a.Report, b.Report)
}
