// Package analysis provides spectral tools for sampled aggregates.
//
//   - [FFT]: radix-2 Cooley-Tukey transform
//   - [PowerSpectrum]: magnitudes of the positive-frequency bins
//   - [DominantFrequency]: strongest non-DC frequency of a series
//
// A spring force driven by a probe moving at angular speed w shows up as a
// peak near w/(2*pi):
//
//	freq, err := analysis.DominantFrequency(series, dt)
package analysis
