package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the FFT of data
// with its mean removed. Bin i corresponds to i*sampleRate/len(data).
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of data sampled at sampleRate, or 0 if there is none.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || sampleRate <= 0 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0
	}
	return float64(best) * sampleRate / float64(len(data))
}
