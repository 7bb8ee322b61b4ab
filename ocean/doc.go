// Package ocean synthesizes a statistically realistic ocean surface from a
// wind-driven Phillips spectrum.
//
// The pipeline, leaf first:
//
//	GenerateGaussian      once per configuration
//	BuildInitialSpectrum  once per configuration (h0)
//	Evolve                every frame: height, two slope and two displacement spectra
//	spectral.Inverse2D    every frame, five times, concurrently
//	Reconstruct           every frame: displacement, normal and foam maps
//
// Simulation chains these stages, caches the time-invariant grids behind an
// explicit generated flag, and reuses its per-frame buffers.
package ocean
