package report

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantFrequency returns the frequency (Hz) carrying the most power in xs
// sampled every dt seconds. The DC component is ignored; a flat or too short
// signal yields 0.
func DominantFrequency(xs []float64, dt float64) float64 {
	n := len(xs)
	if n < 4 || dt <= 0 {
		return 0
	}

	spectrum := fft.FFTReal(xs)

	maxPower := 0.0
	dominant := 0
	for i := 1; i <= n/2; i++ {
		p := cmplx.Abs(spectrum[i])
		p *= p
		if p > maxPower {
			maxPower = p
			dominant = i
		}
	}
	return float64(dominant) / (float64(n) * dt)
}
