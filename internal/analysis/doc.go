// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a sampled series via FFT
//   - [DominantFrequency]: strongest non-DC frequency of a series
//   - [Phase]: position/velocity portrait of one body along one axis
//   - [PhasePlot]: braille plot of a portrait
//
// A wandering or bouncing body leaves a periodic signature in its kinetic
// energy; the spectrum makes the bounce rate visible:
//
//	f := analysis.DominantFrequency(energy, fps)
package analysis
