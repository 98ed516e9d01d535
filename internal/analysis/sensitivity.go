package analysis

import (
	"github.com/papari-man/LVILC/internal/cosmo"
)

// SweepPoint is one observable evaluation of a parameter sweep.
type SweepPoint struct {
	Value float64
	Mu    float64
}

// Sensitivity sweeps one parameter of a model over the given values
// and records the distance modulus at redshift z for each. The model's
// parameters are restored afterwards.
func Sensitivity(m cosmo.Model, param string, values []float64, z float64) ([]SweepPoint, error) {
	saved := make([]float64, len(m.Params()))
	copy(saved, m.Params())
	defer m.SetParams(saved)

	out := make([]SweepPoint, 0, len(values))
	for _, v := range values {
		if err := m.SetParam(param, v); err != nil {
			return nil, err
		}
		out = append(out, SweepPoint{Value: v, Mu: m.DistanceModulus(z)})
	}
	return out, nil
}
