package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/newmark"
	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch is returned when a history does not match its input record.
var ErrShapeMismatch = errors.New("response history does not match ground motion record")

// Row is one time step of the structure + damper response
type Row struct {
	Time           float64 `parquet:"time"`             // s
	GroundAccel    float64 `parquet:"ground_accel"`     // m/s²
	FloorDisp      float64 `parquet:"floor_disp"`       // m, relative to ground
	FloorVel       float64 `parquet:"floor_vel"`        // m/s, relative to ground
	FloorAccel     float64 `parquet:"floor_accel"`      // m/s², relative to ground
	FloorAbsAccel  float64 `parquet:"floor_abs_accel"`  // m/s²
	DamperRelDisp  float64 `parquet:"damper_rel_disp"`  // m, relative to floor
	DamperRelVel   float64 `parquet:"damper_rel_vel"`   // m/s, relative to floor
	DamperRelAccel float64 `parquet:"damper_rel_accel"` // m/s², relative to floor
	DamperAbsDisp  float64 `parquet:"damper_abs_disp"`  // m, relative to ground
	DamperAbsAccel float64 `parquet:"damper_abs_accel"` // m/s²
}

// Columns lists the tabular column names in Row field order
var Columns = []string{
	"time",
	"ground_accel",
	"floor_disp",
	"floor_vel",
	"floor_accel",
	"floor_abs_accel",
	"damper_rel_disp",
	"damper_rel_vel",
	"damper_rel_accel",
	"damper_abs_disp",
	"damper_abs_accel",
}

// Values returns the row in Columns order
func (r Row) Values() []float64 {
	return []float64{
		r.Time,
		r.GroundAccel,
		r.FloorDisp,
		r.FloorVel,
		r.FloorAccel,
		r.FloorAbsAccel,
		r.DamperRelDisp,
		r.DamperRelVel,
		r.DamperRelAccel,
		r.DamperAbsDisp,
		r.DamperAbsAccel,
	}
}

// Summary holds the response extrema (absolute values)
type Summary struct {
	MaxGroundAccel    float64 // m/s²
	MaxFloorAccel     float64 // m/s², absolute floor acceleration
	MaxFloorDisp      float64 // m
	MaxDamperAbsAccel float64 // m/s²
	MaxDamperRelDisp  float64 // m

	PeakFloorDispTime   float64 // s
	DominantFrequencyHz float64 // of the floor displacement
}

// Report is the tabulated response of one run
type Report struct {
	Name    string
	Dt      float64
	Rows    []Row
	Summary Summary
}

// Build tabulates a two-degree-of-freedom damper history against its ground
// motion record. gravity converts the record from g to m/s².
func Build(rec *motion.Record, hist *newmark.History, gravity float64) (*Report, error) {
	if hist.Len() != rec.Len() {
		return nil, fmt.Errorf("%w: %d steps for %d samples", ErrShapeMismatch, hist.Len(), rec.Len())
	}
	if hist.DOF() != 2 {
		return nil, fmt.Errorf("%w: expected 2 degrees of freedom, got %d", ErrShapeMismatch, hist.DOF())
	}

	ground := rec.Accelerations(gravity)
	rows := make([]Row, rec.Len())
	for i := range rows {
		u, v, a := hist.U[i], hist.V[i], hist.A[i]
		rows[i] = Row{
			Time:           rec.Samples[i].Time,
			GroundAccel:    ground[i],
			FloorDisp:      u[0],
			FloorVel:       v[0],
			FloorAccel:     a[0],
			FloorAbsAccel:  ground[i] + a[0],
			DamperRelDisp:  u[1],
			DamperRelVel:   v[1],
			DamperRelAccel: a[1],
			DamperAbsDisp:  u[0] + u[1],
			DamperAbsAccel: ground[i] + a[0] + a[1],
		}
	}

	rep := &Report{Name: rec.Name, Dt: hist.Dt, Rows: rows}
	rep.Summary = summarize(rows, hist.Dt)
	return rep, nil
}

// Column extracts a single column by name
func (r *Report) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}

	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Values()[idx]
	}
	return out, nil
}

func summarize(rows []Row, dt float64) Summary {
	pick := func(f func(Row) float64) []float64 {
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = f(r)
		}
		return out
	}

	floorDisp := pick(func(r Row) float64 { return r.FloorDisp })
	peak, idx := maxAbs(floorDisp)

	return Summary{
		MaxGroundAccel:      mustMax(pick(func(r Row) float64 { return r.GroundAccel })),
		MaxFloorAccel:       mustMax(pick(func(r Row) float64 { return r.FloorAbsAccel })),
		MaxFloorDisp:        peak,
		MaxDamperAbsAccel:   mustMax(pick(func(r Row) float64 { return r.DamperAbsAccel })),
		MaxDamperRelDisp:    mustMax(pick(func(r Row) float64 { return r.DamperRelDisp })),
		PeakFloorDispTime:   rows[idx].Time,
		DominantFrequencyHz: DominantFrequency(floorDisp, dt),
	}
}

// maxAbs returns the largest absolute value and its index
func maxAbs(xs []float64) (float64, int) {
	if len(xs) == 0 {
		return 0, 0
	}
	abs := make([]float64, len(xs))
	for i, x := range xs {
		abs[i] = math.Abs(x)
	}
	idx := floats.MaxIdx(abs)
	return abs[idx], idx
}

func mustMax(xs []float64) float64 {
	m, _ := maxAbs(xs)
	return m
}
