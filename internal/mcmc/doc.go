// Package mcmc implements affine-invariant ensemble Markov chain Monte
// Carlo over posterior targets.
//
// The core abstraction is [Target], a log posterior density with a
// known dimension and starting point. [Sampler] advances an even
// ensemble of walkers with red-black sweeps: one half of the ensemble
// proposes against the frozen other half, proposals are evaluated
// concurrently and accepted with the move's detailed-balance
// correction. Runs are deterministic for a fixed seed because all
// random draws happen on a single sequential stream; only the pure
// density evaluations run in parallel.
//
// Moves:
//
//   - [Stretch]: Goodman-Weare stretch move (the emcee default)
//   - [Walk]: Goodman-Weare walk move over a random subensemble
//   - [Metropolis]: per-walker Gaussian steps with acceptance-rate
//     tuning during burn-in
//
// [Problem] adapts a cosmological model family and a supernova sample
// into a Target with priors; [Chain] stores the raw walker history and
// produces flattened posterior samples and [ParamSummary] statistics.
package mcmc
