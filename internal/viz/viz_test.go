package viz

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/experiment"
	"github.com/san-kum/forcekit/internal/forces"
	"github.com/san-kum/forcekit/internal/storage"
	"github.com/san-kum/forcekit/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSamples() []experiment.Sample {
	return []experiment.Sample{
		{Step: 1, Time: 0.1, F64: 1, F32: 2, Vec: vector.NewVec3(3.0, 4.0, 0.0), Energy: 0.5},
		{Step: 2, Time: 0.2, F64: 2, F32: 1, Vec: vector.NewVec3(0.0, 0.0, 1.0), Energy: 0.25},
	}
}

func TestExtract(t *testing.T) {
	s := testSamples()

	tests := []struct {
		series string
		want   []float64
	}{
		{SeriesF64, []float64{1, 2}},
		{SeriesF32, []float64{2, 1}},
		{SeriesVec, []float64{5, 1}},
		{SeriesEnergy, []float64{0.5, 0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.series, func(t *testing.T) {
			got, err := Extract(s, tt.series)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Extract(s, "torque")
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	out, err := Plot(testSamples(), SeriesF64, 5, 20)
	require.NoError(t, err)
	assert.Contains(t, out, seriesCaptions[SeriesF64])

	_, err = Plot(nil, SeriesF64, 5, 20)
	assert.Error(t, err)
}

func TestWriteBackends(t *testing.T) {
	var buf bytes.Buffer
	rows := []BackendRow{
		{Info: backend.Describe[forces.CPU64, float64](), Registered: 2},
		{Info: backend.Describe[backend.CUDA[float64], float64](), Registered: 0},
	}
	require.NoError(t, WriteBackends(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "BACKEND")
	assert.Contains(t, lines[1], "float64")
	assert.Contains(t, lines[1], "2")
}

func TestWriteRuns(t *testing.T) {
	var buf bytes.Buffer
	runs := []storage.RunMetadata{
		{ID: "abc_1", Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), Steps: 10, Dt: 0.1},
	}
	require.NoError(t, WriteRuns(&buf, runs))
	assert.Contains(t, buf.String(), "abc_1")
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁█", Sparkline([]float64{0, 1}, 10))
	assert.Equal(t, "───", Sparkline(nil, 3))
	assert.Equal(t, 4, len([]rune(Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4))))
}

func TestNextTheme(t *testing.T) {
	names := ThemeNames()
	for i, name := range names {
		assert.Equal(t, names[(i+1)%len(names)], NextTheme(name).Name)
	}
	assert.Equal(t, ThemeNeon, GetTheme("missing"))
}

func newLive(t *testing.T, steps int) LiveModel {
	t.Helper()
	reg := experiment.NewRegistry()
	exp := experiment.New(experiment.Config{Steps: steps, Dt: 0.1, Forces: []experiment.Spec{
		{Kind: "spring", Value: 2},
		{Kind: "constant", Precision: experiment.PrecisionF32, Value: 1},
	}}, nil)
	require.NoError(t, exp.Setup(reg))
	return NewLiveModel(context.Background(), exp, reg, steps, time.Millisecond)
}

func tick(m tea.Model) tea.Model {
	next, _ := m.Update(TickMsg(time.Now()))
	return next
}

func TestLiveModel_StepsUntilDone(t *testing.T) {
	var m tea.Model = newLive(t, 3)
	for i := 0; i < 5; i++ {
		m = tick(m)
	}

	live := m.(LiveModel)
	require.NoError(t, live.Err())
	assert.Len(t, live.Samples(), 3)
	assert.True(t, live.done)
	assert.Contains(t, live.View(), "DONE")
}

func TestLiveModel_PauseAndRestart(t *testing.T) {
	var m tea.Model = newLive(t, 10)
	m = tick(m)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = tick(m)
	assert.Len(t, m.(LiveModel).Samples(), 1)
	assert.Contains(t, m.View(), "PAUSED")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Empty(t, m.(LiveModel).Samples())
	assert.Equal(t, uint64(0), m.(LiveModel).exp.Frame().Step)
}

func TestLiveModel_CycleSeriesAndQuit(t *testing.T) {
	var m tea.Model = newLive(t, 10)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.(LiveModel).series)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
