package viz

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/experiment"
	"github.com/san-kum/forcekit/internal/storage"
)

// Series names accepted by Extract and Plot.
const (
	SeriesF64    = "f64"
	SeriesF32    = "f32"
	SeriesVec    = "vec"
	SeriesEnergy = "energy"
)

var seriesNames = []string{SeriesF64, SeriesF32, SeriesVec, SeriesEnergy}

var seriesCaptions = map[string]string{
	SeriesF64:    "sum of CPU[float64] forces",
	SeriesF32:    "sum of CPU[float32] forces",
	SeriesVec:    "|sum of CPU[Vec3] forces|",
	SeriesEnergy: "energy of CPU[float64] forces",
}

// SeriesNames returns every series in display order.
func SeriesNames() []string {
	return append([]string(nil), seriesNames...)
}

// Extract pulls one named series out of samples. The vec series is the
// magnitude of the vector aggregate.
func Extract(samples []experiment.Sample, series string) ([]float64, error) {
	out := make([]float64, len(samples))
	for i, s := range samples {
		switch series {
		case SeriesF64:
			out[i] = s.F64
		case SeriesF32:
			out[i] = float64(s.F32)
		case SeriesVec:
			out[i] = s.Vec.Norm()
		case SeriesEnergy:
			out[i] = s.Energy
		default:
			return nil, fmt.Errorf("viz: unknown series %q (available: %v)", series, seriesNames)
		}
	}
	return out, nil
}

// Plot renders one series as an asciigraph chart.
func Plot(samples []experiment.Sample, series string, height, width int) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("viz: no samples to plot")
	}
	data, err := Extract(samples, series)
	if err != nil {
		return "", err
	}
	return PlotValues(data, height, width, seriesCaptions[series]), nil
}

// PlotValues renders raw values as an asciigraph chart.
func PlotValues(data []float64, height, width int, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// BackendRow is one line of the backends table.
type BackendRow struct {
	Info       backend.Info
	Registered int
}

func WriteBackends(out io.Writer, rows []BackendRow) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tDEVICE\tVECTOR\tAVAILABLE\tFORCES")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n",
			r.Info.ID,
			r.Info.Device,
			r.Info.Vector,
			r.Info.Available,
			r.Registered,
		)
	}
	return w.Flush()
}

func WriteRuns(out io.Writer, runs []storage.RunMetadata) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tFORCES\tBACKENDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			len(run.Forces),
			len(run.Backends),
		)
	}
	return w.Flush()
}

// Summary renders the last sample of a run.
func Summary(s experiment.Sample) string {
	st := DefaultStyles
	line := func(label, value string) string {
		return st.Label.Render(label) + st.Value.Render(value) + "\n"
	}
	return line("step", fmt.Sprintf("%d", s.Step)) +
		line("time", fmt.Sprintf("%.3f", s.Time)) +
		line("f64", fmt.Sprintf("%.6f", s.F64)) +
		line("f32", fmt.Sprintf("%.6f", s.F32)) +
		line("vec", s.Vec.String()) +
		line("energy", fmt.Sprintf("%.6f", s.Energy))
}
