// Package viz renders sampling runs, in the terminal and as image
// files.
//
// The terminal side is built on Bubble Tea:
//
//   - [Live]: watches an ensemble sampler advance sweep by sweep
//   - [Explorer]: interactive model browser with adjustable parameters
//   - [Scatter]: Braille scatter plots of posterior samples
//   - [TracePlot], [HistogramPlot]: asciigraph walker traces and
//     marginal histograms
//
// [RenderComparison] draws distance modulus curves of two models into
// a PNG for use outside the terminal.
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume sampling
//	R     - Restart from the initial ball
//	Tab   - Cycle the highlighted parameter
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
