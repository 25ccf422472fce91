package simulation

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/report"
)

// ErrEmptySweep is returned when a sweep has no frequency ratios to try.
var ErrEmptySweep = errors.New("no frequency ratios to sweep")

// SweepPoint is the peak response for one damper frequency ratio
type SweepPoint struct {
	FrequencyRatio float64
	Summary        report.Summary
}

// Sweep runs rec once per frequency ratio, keeping every other parameter of p
func Sweep(rec *motion.Record, p Params, ratios []float64) ([]SweepPoint, error) {
	if len(ratios) == 0 {
		return nil, ErrEmptySweep
	}

	p.Compare = false
	points := make([]SweepPoint, 0, len(ratios))
	for _, alpha := range ratios {
		p.Damper.FrequencyRatio = alpha
		res, err := Run(rec, p)
		if err != nil {
			return nil, fmt.Errorf("frequency ratio %g: %w", alpha, err)
		}
		points = append(points, SweepPoint{FrequencyRatio: alpha, Summary: res.Report.Summary})
	}
	return points, nil
}

// Best returns the index of the point with the smallest peak floor displacement
func Best(points []SweepPoint) int {
	best := 0
	for i, pt := range points {
		if pt.Summary.MaxFloorDisp < points[best].Summary.MaxFloorDisp {
			best = i
		}
	}
	return best
}

// Ratios returns n evenly spaced values from lo to hi inclusive
func Ratios(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
