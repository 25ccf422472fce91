package model

import (
	"gonum.org/v1/gonum/mat"
)

// System is a linear multi-degree-of-freedom model under base excitation.
// The ground acceleration load is f(t) = -M·R·ag(t).
type System struct {
	M *mat.Dense    // mass
	C *mat.Dense    // damping
	K *mat.Dense    // stiffness
	R *mat.VecDense // influence vector
}

// DOF returns the number of degrees of freedom
func (s *System) DOF() int {
	r, _ := s.M.Dims()
	return r
}

// Load returns the equivalent external force for ground acceleration ag (m/s²)
func (s *System) Load(ag float64) *mat.VecDense {
	f := mat.NewVecDense(s.DOF(), nil)
	f.MulVec(s.M, s.R)
	f.ScaleVec(-ag, f)
	return f
}

// Energy returns kinetic plus potential energy ½vᵀMv + ½uᵀKu (J)
func (s *System) Energy(u, v []float64) float64 {
	uv := mat.NewVecDense(len(u), append([]float64(nil), u...))
	vv := mat.NewVecDense(len(v), append([]float64(nil), v...))
	return 0.5*mat.Inner(vv, s.M, vv) + 0.5*mat.Inner(uv, s.K, uv)
}

// TMDSystem builds the two-degree-of-freedom model of a structure carrying a
// tuned mass damper. Coordinates are the structure displacement relative to the
// ground and the damper displacement relative to the structure:
//
//	M = | ms+md  md |   C = | cs  0  |   K = | ks  0  |   R = | 1 |
//	    |  md    md |       | 0   cd |       | 0   kd |       | 0 |
func TMDSystem(s Structure, d Damper) *System {
	c := Derive(s, d)
	return &System{
		M: mat.NewDense(2, 2, []float64{
			c.Ms + c.Md, c.Md,
			c.Md, c.Md,
		}),
		C: mat.NewDense(2, 2, []float64{
			c.Cs, 0,
			0, c.Cd,
		}),
		K: mat.NewDense(2, 2, []float64{
			c.Ks, 0,
			0, c.Kd,
		}),
		R: mat.NewVecDense(2, []float64{1, 0}),
	}
}

// BareSystem builds the single-degree-of-freedom model of the structure alone
func BareSystem(s Structure) *System {
	return &System{
		M: mat.NewDense(1, 1, []float64{s.Mass}),
		C: mat.NewDense(1, 1, []float64{s.Damping()}),
		K: mat.NewDense(1, 1, []float64{s.Stiffness()}),
		R: mat.NewVecDense(1, []float64{1}),
	}
}
