// Package cosmo provides the cosmological expansion models fitted by
// the sampler.
//
// Each model implements the [Model] interface, mapping redshift to
// luminosity distance, distance modulus and Hubble rate:
//
//   - [LVILC]: late-time expansion driven by infall onto a central
//     supermassive black hole
//   - [LCDM]: flat Lambda-CDM with numerically integrated distances
//   - [LCDMApprox]: quadratic low-redshift Lambda-CDM approximation
//   - [EdS]: Einstein-de Sitter (matter only, closed-form distances)
//
// Distances come from the comoving integral d_C = d_H * int_0^z du/E(u),
// evaluated with fixed-order Gauss-Legendre quadrature where no closed
// form exists. All models report distances in Mpc, rates in km/s/Mpc
// and distance moduli in magnitudes:
//
//	m := cosmo.NewLVILC()
//	mu := m.DistanceModulus(1.0)
//	hz := m.HubbleParameter(1.0)
package cosmo
