package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFT_Impulse(t *testing.T) {
	out, err := FFT([]float64{1, 0, 0, 0})
	require.NoError(t, err)
	for _, c := range out {
		assert.InDelta(t, 1.0, real(c), 1e-12)
		assert.InDelta(t, 0.0, imag(c), 1e-12)
	}
}

func TestFFT_NotPowerOfTwo(t *testing.T) {
	_, err := FFT(make([]float64, 6))
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)
}

func TestPowerSpectrum_Pads(t *testing.T) {
	assert.Len(t, PowerSpectrum(make([]float64, 100)), 64)
}

func TestDominantFrequency(t *testing.T) {
	const (
		dt   = 0.01
		freq = 4.0
	)
	data := make([]float64, 1024)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	got, err := DominantFrequency(data, dt)
	require.NoError(t, err)
	binWidth := 1 / (float64(len(data)) * dt)
	assert.InDelta(t, freq, got, binWidth)
}

func TestDominantFrequency_Errors(t *testing.T) {
	_, err := DominantFrequency([]float64{1, 2, 3, 4}, 0)
	assert.ErrorIs(t, err, ErrBadStep)
	_, err = DominantFrequency([]float64{1, 2}, 0.1)
	assert.ErrorIs(t, err, ErrTooShort)
}
