package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrShortSeries indicates a series too short for the requested
	// diagnostic.
	ErrShortSeries = errors.New("analysis: series too short")

	// ErrZeroVariance indicates a constant series.
	ErrZeroVariance = errors.New("analysis: series has zero variance")
)

// sokalWindow is the window constant c of the self-consistent
// truncation M >= c * tau(M).
const sokalWindow = 5.0

// Autocorr returns the normalized autocorrelation function of a
// series, computed with zero-padded FFTs so aliasing from the circular
// convolution cancels.
//
// Algorithm:
// 1. Subtract the mean and zero-pad to at least twice the length
// 2. Multiply the spectrum by its conjugate
// 3. Transform back and normalize by lag zero
func Autocorr(series []float64) ([]float64, error) {
	n := len(series)
	if n < 2 {
		return nil, ErrShortSeries
	}

	mean := stat.Mean(series, nil)
	buf := make([]float64, nextPow2(2*n))
	for i, v := range series {
		buf[i] = v - mean
	}

	f := FFTReal(buf)
	for i, v := range f {
		f[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}
	inv := IFFT(f)

	norm := real(inv[0])
	if norm == 0 {
		return nil, ErrZeroVariance
	}

	acf := make([]float64, n)
	for i := range acf {
		acf[i] = real(inv[i]) / norm
	}
	return acf, nil
}

// IntegratedTime estimates the integrated autocorrelation time with
// the Sokal windowing rule. It reports ErrShortSeries alongside the
// last estimate when no self-consistent window fits the chain, which
// usually means the run needs more steps.
func IntegratedTime(series []float64) (float64, error) {
	acf, err := Autocorr(series)
	if err != nil {
		return 0, err
	}

	tau := 1.0
	cumulative := 0.0
	for m := 1; m < len(acf); m++ {
		cumulative += acf[m]
		tau = 1 + 2*cumulative
		if float64(m) >= sokalWindow*tau {
			return tau, nil
		}
	}
	return tau, ErrShortSeries
}

// EffectiveSampleSize divides the series length by its integrated
// autocorrelation time, clamped below at one.
func EffectiveSampleSize(series []float64) float64 {
	tau, err := IntegratedTime(series)
	if err != nil && tau == 0 {
		return 0
	}
	if tau < 1 {
		tau = 1
	}
	return float64(len(series)) / tau
}

// MeanStdErr is the Monte Carlo error of the series mean, inflated by
// the autocorrelation time.
func MeanStdErr(series []float64) float64 {
	ess := EffectiveSampleSize(series)
	if ess == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.Variance(series, nil) / ess)
}
