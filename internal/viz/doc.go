// Package viz renders force aggregates in the terminal.
//
// Static output (tables and plots for the run, backends and show commands)
// is built from lipgloss styles and asciigraph charts. [LiveModel] is a
// Bubble Tea program that steps an experiment on a timer and redraws the
// per-backend aggregates as they change.
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	R     - Restart the experiment
//	Tab   - Cycle the plotted series
//	T     - Cycle color themes
//	Q     - Quit
package viz
