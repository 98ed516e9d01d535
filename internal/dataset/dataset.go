package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/montanaflynn/stats"
)

// EnvData names the environment variable that overrides the builtin
// sample with a CSV file (columns z, mu, sigma_mu).
const EnvData = "LVILC_DATA"

// CosmologyData holds a supernova distance-modulus sample: redshifts,
// observed moduli and their one-sigma errors, index-aligned.
type CosmologyData struct {
	Z      []float64
	Mu     []float64
	MuErr  []float64
	Source string
}

// Summary aggregates the sample for display and logging.
type Summary struct {
	N       int
	ZMin    float64
	ZMax    float64
	MeanMu  float64
	MeanErr float64
}

// Default returns the builtin 42-point sample: synthetic supernovae
// drawn from a flat Lambda-CDM fiducial (H0 = 70 km/s/Mpc,
// Omega_m = 0.3) with per-point photometric scatter.
func Default() *CosmologyData {
	d := &CosmologyData{
		Z:      make([]float64, len(builtinSample)),
		Mu:     make([]float64, len(builtinSample)),
		MuErr:  make([]float64, len(builtinSample)),
		Source: "builtin",
	}
	for i, row := range builtinSample {
		d.Z[i] = row[0]
		d.Mu[i] = row[1]
		d.MuErr[i] = row[2]
	}
	return d
}

// Load returns the sample named by the LVILC_DATA environment variable,
// or the builtin sample when the variable is unset.
func Load() (*CosmologyData, error) {
	if path := os.Getenv(EnvData); path != "" {
		return LoadCSV(path)
	}
	return Default(), nil
}

// LoadCSV reads a three-column CSV file (z, mu, sigma_mu). A first row
// that does not parse as numbers is treated as a header and skipped.
func LoadCSV(path string) (*CosmologyData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %s is empty", path)
	}

	d := &CosmologyData{Source: path}
	for i, rec := range records {
		z, errZ := strconv.ParseFloat(rec[0], 64)
		mu, errMu := strconv.ParseFloat(rec[1], 64)
		sig, errSig := strconv.ParseFloat(rec[2], 64)
		if errZ != nil || errMu != nil || errSig != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("dataset: %s row %d: non-numeric field", path, i+1)
		}
		d.Z = append(d.Z, z)
		d.Mu = append(d.Mu, mu)
		d.MuErr = append(d.MuErr, sig)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return d, nil
}

// SaveCSV writes the sample with a header row, suitable for reloading
// through LoadCSV.
func (d *CosmologyData) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"z", "mu", "sigma_mu"}); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	for i := range d.Z {
		rec := []string{
			strconv.FormatFloat(d.Z[i], 'f', 4, 64),
			strconv.FormatFloat(d.Mu[i], 'f', 4, 64),
			strconv.FormatFloat(d.MuErr[i], 'f', 4, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("dataset: write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func (d *CosmologyData) Len() int { return len(d.Z) }

// Validate checks that the sample is non-empty, index-aligned, and has
// positive redshifts and errors.
func (d *CosmologyData) Validate() error {
	if len(d.Z) == 0 {
		return fmt.Errorf("empty sample")
	}
	if len(d.Mu) != len(d.Z) || len(d.MuErr) != len(d.Z) {
		return fmt.Errorf("column lengths differ: %d z, %d mu, %d sigma", len(d.Z), len(d.Mu), len(d.MuErr))
	}
	for i := range d.Z {
		if d.Z[i] <= 0 {
			return fmt.Errorf("row %d: redshift %g must be positive", i+1, d.Z[i])
		}
		if d.MuErr[i] <= 0 {
			return fmt.Errorf("row %d: error %g must be positive", i+1, d.MuErr[i])
		}
	}
	// The richest model has three parameters; fewer points than this
	// leave no degrees of freedom for a fit.
	if len(d.Z) < 4 {
		return fmt.Errorf("sample has %d points, need at least 4", len(d.Z))
	}
	return nil
}

// Summarize computes display statistics over the sample.
func (d *CosmologyData) Summarize() Summary {
	zMin, _ := stats.Min(d.Z)
	zMax, _ := stats.Max(d.Z)
	meanMu, _ := stats.Mean(d.Mu)
	meanErr, _ := stats.Mean(d.MuErr)
	return Summary{
		N:       d.Len(),
		ZMin:    zMin,
		ZMax:    zMax,
		MeanMu:  meanMu,
		MeanErr: meanErr,
	}
}
