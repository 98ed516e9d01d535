package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/papari-man/LVILC/internal/mcmc"
)

// Store persists sampling runs under a base directory, one
// subdirectory per run holding metadata.json, chain.csv and
// summary.json.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Move      string             `json:"move"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Walkers   int                `json:"walkers"`
	Steps     int                `json:"steps"`
	BurnIn    int                `json:"burn_in"`
	Params    []string           `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one completed run and returns its generated ID. The
// chain CSV keeps every recorded sweep, burn-in included, so a later
// LoadChain sees exactly what the sampler produced.
func (s *Store) Save(model, move string, chain *mcmc.Chain, summary []mcmc.ParamSummary, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d_%s", model, time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Move:      move,
		Timestamp: time.Now(),
		Seed:      chain.Seed(),
		Walkers:   chain.Walkers(),
		Steps:     chain.Len(),
		BurnIn:    chain.BurnIn(),
		Params:    chain.Names(),
		Metrics:   metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if summary != nil {
		if err := writeJSON(filepath.Join(runDir, "summary.json"), summary); err != nil {
			return "", err
		}
	}

	csvFile, err := os.Create(filepath.Join(runDir, "chain.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"step", "walker"}
	header = append(header, chain.Names()...)
	header = append(header, "log_prob")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for step := 0; step < chain.Len(); step++ {
		for walker := 0; walker < chain.Walkers(); walker++ {
			row := []string{strconv.Itoa(step), strconv.Itoa(walker)}
			for _, val := range chain.At(step, walker) {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
			row = append(row, strconv.FormatFloat(chain.LogProbAt(step, walker), 'g', -1, 64))
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns the metadata of every readable run, newest first.
// Directories without a parsable metadata.json are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSummary reads the stored parameter summary of a run. Runs saved
// without one yield a nil summary and no error.
func (s *Store) LoadSummary(runID string) ([]mcmc.ParamSummary, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "summary.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var summary []mcmc.ParamSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// LoadChain rebuilds the recorded chain of a run from its CSV. The
// walker count, burn-in and seed come from the run metadata.
func (s *Store) LoadChain(runID string) (*mcmc.Chain, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "chain.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	chain := mcmc.NewChain(meta.Params, meta.Walkers, meta.BurnIn, meta.Seed)
	if len(records) < 2 {
		return chain, nil
	}

	dim := len(meta.Params)
	want := 2 + dim + 1
	positions := make([]mcmc.Params, meta.Walkers)
	logp := make([]float64, meta.Walkers)
	filled := 0

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != want {
			return nil, fmt.Errorf("storage: %s chain.csv row %d: expected %d fields, got %d", runID, i, want, len(record))
		}

		walker, err := strconv.Atoi(record[1])
		if err != nil || walker < 0 || walker >= meta.Walkers {
			return nil, fmt.Errorf("storage: %s chain.csv row %d: bad walker index %q", runID, i, record[1])
		}

		p := make(mcmc.Params, dim)
		for j := 0; j < dim; j++ {
			v, err := strconv.ParseFloat(record[2+j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s chain.csv row %d: non-numeric field", runID, i)
			}
			p[j] = v
		}
		lp, err := strconv.ParseFloat(record[want-1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s chain.csv row %d: non-numeric field", runID, i)
		}

		positions[walker] = p
		logp[walker] = lp
		filled++

		if filled == meta.Walkers {
			chain.Append(positions, logp)
			filled = 0
		}
	}

	return chain, nil
}
