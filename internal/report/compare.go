package report

import (
	"fmt"

	"github.com/alexiusacademia/gotmd/internal/newmark"
)

// Comparison contrasts the damped structure with the same structure without a damper
type Comparison struct {
	Time []float64

	FloorDisp     []float64 // with damper (m)
	BareFloorDisp []float64 // without damper (m)

	PeakDisp      float64 // m
	PeakDispBare  float64 // m
	PeakAccel     float64 // m/s², absolute
	PeakAccelBare float64 // m/s², absolute

	DispReduction  float64 // fraction of the bare peak removed by the damper
	AccelReduction float64
}

// Compare builds a Comparison from a damped report and a single-degree-of-freedom
// history of the bare structure driven by the same ground motion.
func Compare(rep *Report, bare *newmark.History) (*Comparison, error) {
	if bare.Len() != len(rep.Rows) {
		return nil, fmt.Errorf("%w: bare run has %d steps, report has %d", ErrShapeMismatch, bare.Len(), len(rep.Rows))
	}
	if bare.DOF() != 1 {
		return nil, fmt.Errorf("%w: bare run must have 1 degree of freedom, got %d", ErrShapeMismatch, bare.DOF())
	}

	c := &Comparison{
		Time:          make([]float64, len(rep.Rows)),
		FloorDisp:     make([]float64, len(rep.Rows)),
		BareFloorDisp: newmark.Channel(bare.U, 0),
	}
	bareAbsAccel := make([]float64, len(rep.Rows))
	for i, r := range rep.Rows {
		c.Time[i] = r.Time
		c.FloorDisp[i] = r.FloorDisp
		bareAbsAccel[i] = r.GroundAccel + bare.A[i][0]
	}

	c.PeakDisp = rep.Summary.MaxFloorDisp
	c.PeakAccel = rep.Summary.MaxFloorAccel
	c.PeakDispBare, _ = maxAbs(c.BareFloorDisp)
	c.PeakAccelBare, _ = maxAbs(bareAbsAccel)
	c.DispReduction = reduction(c.PeakDisp, c.PeakDispBare)
	c.AccelReduction = reduction(c.PeakAccel, c.PeakAccelBare)
	return c, nil
}

func reduction(with, without float64) float64 {
	if without == 0 {
		return 0
	}
	return 1 - with/without
}
