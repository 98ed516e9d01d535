// Package analysis provides convergence and posterior diagnostics for
// sampled chains.
//
// The package includes the standard MCMC health checks:
//
//   - [Autocorr]: normalized autocorrelation function via FFT
//   - [IntegratedTime]: Sokal-windowed integrated autocorrelation time
//   - [EffectiveSampleSize]: sample count discounted by correlation
//   - [GelmanRubin]: potential scale reduction across walkers
//   - [Geweke]: stationarity z-score between chain segments
//   - [GoodnessOfFit]: chi-squared tail probability of the best fit
//   - [CorrelationMatrix]: pairwise parameter correlations
//   - [Sensitivity]: observable response to one-parameter sweeps
//
// # Convergence Checks
//
// A converged run has R-hat near one for every parameter and an
// effective sample size well above a few hundred:
//
//	rhat := analysis.GelmanRubin(chain, 0)
//	if rhat > 1.1 {
//	    // Run longer or drop more burn-in
//	}
package analysis
