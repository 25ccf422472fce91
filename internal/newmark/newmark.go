// Package newmark implements the Newmark-beta time stepping scheme for linear
// structural systems under base excitation.
package newmark

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gotmd/internal/model"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidStep is returned for a non-positive time step.
	ErrInvalidStep = errors.New("time step must be positive")

	// ErrEmptyInput is returned when there is no ground acceleration sample.
	ErrEmptyInput = errors.New("ground acceleration is empty")

	// ErrSingularSystem is returned when the mass or effective stiffness
	// matrix is not positive definite.
	ErrSingularSystem = errors.New("system matrix is not positive definite")
)

// Params are the Newmark integration constants
type Params struct {
	Gamma float64 // γ
	Beta  float64 // β
}

var (
	// AverageAcceleration is the constant average acceleration method (γ=1/2, β=1/4)
	AverageAcceleration = Params{Gamma: 0.5, Beta: 0.25}

	// LinearAcceleration is the linear acceleration method (γ=1/2, β=1/6)
	LinearAcceleration = Params{Gamma: 0.5, Beta: 1.0 / 6.0}
)

// Validate checks that the constants define a usable scheme
func (p Params) Validate() error {
	if p.Beta <= 0 {
		return fmt.Errorf("invalid newmark β=%.4g: must be positive", p.Beta)
	}
	if p.Gamma < 0 {
		return fmt.Errorf("invalid newmark γ=%.4g: must not be negative", p.Gamma)
	}
	return nil
}

// IsUnconditionallyStable reports whether 2β ≥ γ ≥ 1/2
func (p Params) IsUnconditionallyStable() bool {
	return p.Gamma >= 0.5 && 2*p.Beta >= p.Gamma
}

// EffectiveStiffness returns K_eff = K + γ/(βΔt)·C + 1/(βΔt²)·M
func EffectiveStiffness(sys *model.System, p Params, dt float64) *mat.Dense {
	n := sys.DOF()
	keff := mat.NewDense(n, n, nil)
	var tmp mat.Dense

	keff.Copy(sys.K)
	tmp.Scale(p.Gamma/(p.Beta*dt), sys.C)
	keff.Add(keff, &tmp)
	tmp.Scale(1/(p.Beta*dt*dt), sys.M)
	keff.Add(keff, &tmp)
	return keff
}

// factorize performs a Cholesky decomposition of a symmetric matrix
func factorize(a mat.Matrix) (*mat.Cholesky, error) {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrSingularSystem
	}
	return &chol, nil
}

// Integrate advances sys through the ground acceleration history (m/s²)
// with a fixed step dt. The system starts at rest; the initial acceleration
// is solved from the equation of motion.
func Integrate(sys *model.System, groundAccel []float64, dt float64, p Params) (*History, error) {
	if dt <= 0 {
		return nil, ErrInvalidStep
	}
	if len(groundAccel) == 0 {
		return nil, ErrEmptyInput
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := sys.DOF()
	steps := len(groundAccel)
	h := newHistory(steps, n, dt)

	massChol, err := factorize(sys.M)
	if err != nil {
		return nil, fmt.Errorf("mass matrix: %w", err)
	}
	keff := EffectiveStiffness(sys, p, dt)
	keffChol, err := factorize(keff)
	if err != nil {
		return nil, fmt.Errorf("effective stiffness: %w", err)
	}

	u := mat.NewVecDense(n, nil)
	v := mat.NewVecDense(n, nil)
	a := mat.NewVecDense(n, nil)

	// M·a0 = f0 - C·v0 - K·u0 with u0 = v0 = 0
	if err := massChol.SolveVecTo(a, sys.Load(groundAccel[0])); err != nil {
		return nil, fmt.Errorf("initial acceleration: %w", err)
	}
	h.record(0, u, v, a)

	// integration constants
	a0 := 1 / (p.Beta * dt * dt)
	a1 := 1 / (p.Beta * dt)
	a2 := 1/(2*p.Beta) - 1
	b0 := p.Gamma / (p.Beta * dt)
	b1 := p.Gamma/p.Beta - 1
	b2 := dt * (p.Gamma/(2*p.Beta) - 1)

	mTerm := mat.NewVecDense(n, nil)
	cTerm := mat.NewVecDense(n, nil)
	rhs := mat.NewVecDense(n, nil)
	work := mat.NewVecDense(n, nil)

	for i := 0; i+1 < steps; i++ {
		// inertia correction
		mTerm.ScaleVec(a0, u)
		mTerm.AddScaledVec(mTerm, a1, v)
		mTerm.AddScaledVec(mTerm, a2, a)

		// damping correction
		cTerm.ScaleVec(b0, u)
		cTerm.AddScaledVec(cTerm, b1, v)
		cTerm.AddScaledVec(cTerm, b2, a)

		rhs.CopyVec(sys.Load(groundAccel[i+1]))
		work.MulVec(sys.M, mTerm)
		rhs.AddVec(rhs, work)
		work.MulVec(sys.C, cTerm)
		rhs.AddVec(rhs, work)

		uNext := mat.NewVecDense(n, nil)
		if err := keffChol.SolveVecTo(uNext, rhs); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		aNext := mat.NewVecDense(n, nil)
		aNext.SubVec(uNext, u)
		aNext.ScaleVec(a0, aNext)
		aNext.AddScaledVec(aNext, -a1, v)
		aNext.AddScaledVec(aNext, -a2, a)

		vNext := mat.NewVecDense(n, nil)
		vNext.AddScaledVec(v, dt*(1-p.Gamma), a)
		vNext.AddScaledVec(vNext, dt*p.Gamma, aNext)

		u, v, a = uNext, vNext, aNext
		h.record(i+1, u, v, a)
	}

	return h, nil
}
