package model

import (
	"fmt"
	"math"
)

// Structure holds the modal properties of the primary structure
type Structure struct {
	Mass  float64 // m_s (kg)
	Omega float64 // ω_s natural circular frequency (rad/s)
	Zeta  float64 // ζ_s damping ratio
}

// Stiffness returns k = m·ω² (N/m)
func (s Structure) Stiffness() float64 {
	return s.Mass * s.Omega * s.Omega
}

// Damping returns c = 2·ζ·m·ω (N·s/m)
func (s Structure) Damping() float64 {
	return 2 * s.Zeta * s.Mass * s.Omega
}

// Period returns the natural period (s)
func (s Structure) Period() float64 {
	return 2 * math.Pi / s.Omega
}

// FrequencyHz returns the natural frequency (Hz)
func (s Structure) FrequencyHz() float64 {
	return s.Omega / (2 * math.Pi)
}

// Validate rejects non-physical structure properties
func (s Structure) Validate() error {
	if s.Mass <= 0 {
		return fmt.Errorf("invalid structure mass: %.4g kg", s.Mass)
	}
	if s.Omega <= 0 {
		return fmt.Errorf("invalid structure frequency: ω=%.4g rad/s", s.Omega)
	}
	if s.Zeta < 0 {
		return fmt.Errorf("invalid structure damping ratio: ζ=%.4g", s.Zeta)
	}
	return nil
}

// Damper describes a tuned mass damper relative to the structure it is attached to
type Damper struct {
	MassRatio      float64 // μ = m_d / m_s
	FrequencyRatio float64 // α = ω_d / ω_s
	Zeta           float64 // ζ_d damping ratio
}

// Mass returns the damper mass (kg)
func (d Damper) Mass(s Structure) float64 {
	return d.MassRatio * s.Mass
}

// Omega returns the damper natural circular frequency (rad/s)
func (d Damper) Omega(s Structure) float64 {
	return d.FrequencyRatio * s.Omega
}

// Stiffness returns k_d = m_d·ω_d² (N/m)
func (d Damper) Stiffness(s Structure) float64 {
	w := d.Omega(s)
	return d.Mass(s) * w * w
}

// Damping returns c_d = 2·ζ_d·m_d·ω_d (N·s/m)
func (d Damper) Damping(s Structure) float64 {
	return 2 * d.Zeta * d.Mass(s) * d.Omega(s)
}

// Validate rejects non-physical damper ratios
func (d Damper) Validate() error {
	if d.MassRatio <= 0 {
		return fmt.Errorf("invalid damper mass ratio: μ=%.4g", d.MassRatio)
	}
	if d.FrequencyRatio <= 0 {
		return fmt.Errorf("invalid damper frequency ratio: α=%.4g", d.FrequencyRatio)
	}
	if d.Zeta < 0 {
		return fmt.Errorf("invalid damper damping ratio: ζd=%.4g", d.Zeta)
	}
	return nil
}

// Coefficients holds the derived mass, stiffness and damping of both bodies
type Coefficients struct {
	Ms, Ks, Cs float64 // structure
	Md, Kd, Cd float64 // damper

	OmegaS float64 // rad/s
	OmegaD float64 // rad/s
}

// Derive computes stiffness and damping coefficients from modal ratios.
// Inputs are not validated here.
func Derive(s Structure, d Damper) Coefficients {
	return Coefficients{
		Ms:     s.Mass,
		Ks:     s.Stiffness(),
		Cs:     s.Damping(),
		Md:     d.Mass(s),
		Kd:     d.Stiffness(s),
		Cd:     d.Damping(s),
		OmegaS: s.Omega,
		OmegaD: d.Omega(s),
	}
}

// DenHartog returns the optimal frequency ratio and damper damping ratio for a
// given mass ratio under harmonic base excitation.
func DenHartog(mu float64) (alpha, zeta float64) {
	alpha = 1 / (1 + mu)
	zeta = math.Sqrt(3 * mu / (8 * math.Pow(1+mu, 3)))
	return alpha, zeta
}
