package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

var ErrShortSeries = errors.New("analysis: series too short")

// PowerSpectrum returns |X_k| for k in [0, n/2] of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest frequency in a series
// sampled every interval seconds. The zero frequency is ignored.
func DominantPeriod(samples []float64, interval float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrShortSeries
	}
	if !(interval > 0) {
		return 0, errors.New("analysis: sample interval must be positive")
	}

	ps := PowerSpectrum(samples)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if peak == 0 || ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, errors.New("analysis: series is constant")
	}

	return float64(len(samples)) * interval / float64(peak), nil
}
