package newmark

import "gonum.org/v1/gonum/mat"

// History holds the response at every time step. U, V and A are indexed
// [step][dof].
type History struct {
	Dt float64
	U  [][]float64 // displacement (m)
	V  [][]float64 // velocity (m/s)
	A  [][]float64 // acceleration (m/s²)
}

func newHistory(steps, dof int, dt float64) *History {
	h := &History{
		Dt: dt,
		U:  make([][]float64, steps),
		V:  make([][]float64, steps),
		A:  make([][]float64, steps),
	}
	for i := 0; i < steps; i++ {
		h.U[i] = make([]float64, dof)
		h.V[i] = make([]float64, dof)
		h.A[i] = make([]float64, dof)
	}
	return h
}

func (h *History) record(i int, u, v, a *mat.VecDense) {
	for j := range h.U[i] {
		h.U[i][j] = u.AtVec(j)
		h.V[i][j] = v.AtVec(j)
		h.A[i][j] = a.AtVec(j)
	}
}

// Len returns the number of time steps
func (h *History) Len() int {
	return len(h.U)
}

// DOF returns the number of degrees of freedom
func (h *History) DOF() int {
	if len(h.U) == 0 {
		return 0
	}
	return len(h.U[0])
}

// State returns the state vector at step i laid out as displacements,
// velocities, then accelerations. For the two-degree-of-freedom damper model
// this is [x_s, x_r, v_s, v_r, a_s, a_r].
func (h *History) State(i int) []float64 {
	n := h.DOF()
	s := make([]float64, 0, 3*n)
	s = append(s, h.U[i]...)
	s = append(s, h.V[i]...)
	s = append(s, h.A[i]...)
	return s
}

// Channel extracts one degree of freedom over time from U, V or A
func Channel(series [][]float64, dof int) []float64 {
	out := make([]float64, len(series))
	for i, row := range series {
		out[i] = row[dof]
	}
	return out
}
