package motion

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewSamples is returned when a record cannot yield a time step.
	ErrTooFewSamples = errors.New("ground motion record needs at least two samples")

	// ErrNonIncreasingTime is returned when sample times do not strictly increase.
	ErrNonIncreasingTime = errors.New("ground motion time values must strictly increase")

	// ErrNonFinite is returned for NaN or infinite samples.
	ErrNonFinite = errors.New("ground motion sample is not finite")
)

// Sample is a single point of a ground acceleration record
type Sample struct {
	Time  float64 // s
	Accel float64 // g
}

// Record is an ordered ground acceleration history with a uniform time step
type Record struct {
	Name    string
	Samples []Sample
}

// NewRecord builds a record from parallel time and acceleration slices
func NewRecord(name string, times, accels []float64) (*Record, error) {
	if len(times) != len(accels) {
		return nil, fmt.Errorf("time and acceleration lengths differ: %d vs %d", len(times), len(accels))
	}

	rec := &Record{Name: name, Samples: make([]Sample, len(times))}
	for i := range times {
		rec.Samples[i] = Sample{Time: times[i], Accel: accels[i]}
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Impulse creates a record with a single acceleration pulse at t=0 followed
// by steps zero samples. Acceleration is in g. A negative steps is treated as 0.
func Impulse(dt float64, steps int, accel float64) *Record {
	if steps < 0 {
		steps = 0
	}
	rec := &Record{Name: "impulse", Samples: make([]Sample, steps+1)}
	for i := range rec.Samples {
		rec.Samples[i].Time = float64(i) * dt
	}
	rec.Samples[0].Accel = accel
	return rec
}

// Validate checks the record invariants
func (r *Record) Validate() error {
	if len(r.Samples) < 2 {
		return ErrTooFewSamples
	}
	for i, s := range r.Samples {
		if !isFinite(s.Time) || !isFinite(s.Accel) {
			return fmt.Errorf("%w: sample %d (t=%g, a=%g)", ErrNonFinite, i, s.Time, s.Accel)
		}
	}
	for i := 1; i < len(r.Samples); i++ {
		// negated so a NaN comparison fails the check
		if !(r.Samples[i].Time > r.Samples[i-1].Time) {
			return fmt.Errorf("%w: t[%d]=%g after t[%d]=%g", ErrNonIncreasingTime,
				i, r.Samples[i].Time, i-1, r.Samples[i-1].Time)
		}
	}
	return nil
}

// Len returns the number of samples
func (r *Record) Len() int {
	return len(r.Samples)
}

// Dt returns the time step taken from the first two samples
func (r *Record) Dt() float64 {
	if len(r.Samples) < 2 {
		return 0
	}
	return r.Samples[1].Time - r.Samples[0].Time
}

// Duration returns the time span covered by the record
func (r *Record) Duration() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	return r.Samples[len(r.Samples)-1].Time - r.Samples[0].Time
}

// IsUniform reports whether every step matches Dt within tol
func (r *Record) IsUniform(tol float64) bool {
	dt := r.Dt()
	for i := 1; i < len(r.Samples); i++ {
		if math.Abs(r.Samples[i].Time-r.Samples[i-1].Time-dt) > tol {
			return false
		}
	}
	return true
}

// Times returns the sample times (s)
func (r *Record) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

// Accelerations returns the record scaled from g to m/s² using gravity
func (r *Record) Accelerations(gravity float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Accel * gravity
	}
	return out
}

// PeakAccel returns the largest absolute acceleration (g) and its time
func (r *Record) PeakAccel() (peak, at float64) {
	for _, s := range r.Samples {
		if a := math.Abs(s.Accel); a > peak {
			peak, at = a, s.Time
		}
	}
	return peak, at
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
