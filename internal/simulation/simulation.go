// Package simulation runs a ground motion record through a structure fitted
// with a tuned mass damper and tabulates the response.
package simulation

import (
	"fmt"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/motion"
	"github.com/alexiusacademia/gotmd/internal/newmark"
	"github.com/alexiusacademia/gotmd/internal/report"
)

// Params are the physical and numerical inputs of a run
type Params struct {
	Structure model.Structure
	Damper    model.Damper
	Newmark   newmark.Params
	Gravity   float64 // g to m/s²

	// Compare also runs the structure without the damper.
	Compare bool
}

// Result is everything a run produces
type Result struct {
	Coefficients model.Coefficients
	System       *model.System
	History      *newmark.History
	Report       *report.Report

	// Comparison is nil unless Params.Compare was set.
	Comparison *report.Comparison
}

// Run integrates the damped structure through rec and builds the report
func Run(rec *motion.Record, p Params) (*Result, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := p.Structure.Validate(); err != nil {
		return nil, err
	}
	if err := p.Damper.Validate(); err != nil {
		return nil, err
	}
	if p.Gravity <= 0 {
		return nil, fmt.Errorf("invalid gravity: %g", p.Gravity)
	}

	ground := rec.Accelerations(p.Gravity)
	sys := model.TMDSystem(p.Structure, p.Damper)
	hist, err := newmark.Integrate(sys, ground, rec.Dt(), p.Newmark)
	if err != nil {
		return nil, fmt.Errorf("integrate: %w", err)
	}

	rep, err := report.Build(rec, hist, p.Gravity)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Coefficients: model.Derive(p.Structure, p.Damper),
		System:       sys,
		History:      hist,
		Report:       rep,
	}

	if p.Compare {
		bare, err := newmark.Integrate(model.BareSystem(p.Structure), ground, rec.Dt(), p.Newmark)
		if err != nil {
			return nil, fmt.Errorf("integrate bare structure: %w", err)
		}
		if res.Comparison, err = report.Compare(rep, bare); err != nil {
			return nil, err
		}
	}

	return res, nil
}
