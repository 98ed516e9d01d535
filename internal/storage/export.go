package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/papari-man/LVILC/internal/mcmc"
)

type ExportData struct {
	Model      string              `json:"model"`
	Move       string              `json:"move"`
	Walkers    int                 `json:"walkers"`
	Steps      int                 `json:"steps"`
	BurnIn     int                 `json:"burn_in"`
	Seed       int64               `json:"seed"`
	Params     []string            `json:"params"`
	Acceptance float64             `json:"acceptance"`
	Summary    []mcmc.ParamSummary `json:"summary,omitempty"`
	Samples    [][]float64         `json:"samples"`
	LogProb    []float64           `json:"log_prob"`
}

func buildExport(model, move string, chain *mcmc.Chain, summary []mcmc.ParamSummary) ExportData {
	flat := chain.Flat()
	data := ExportData{
		Model:      model,
		Move:       move,
		Walkers:    chain.Walkers(),
		Steps:      chain.Len(),
		BurnIn:     chain.BurnIn(),
		Seed:       chain.Seed(),
		Params:     chain.Names(),
		Acceptance: chain.Acceptance(),
		Summary:    summary,
		Samples:    make([][]float64, len(flat)),
		LogProb:    chain.FlatLogProb(),
	}
	for i, p := range flat {
		data.Samples[i] = p
	}
	return data
}

// ExportJSON writes the post-burn-in samples of a run as an indented
// JSON document.
func ExportJSON(path, model, move string, chain *mcmc.Chain, summary []mcmc.ParamSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeExport(file, model, move, chain, summary)
}

func ExportJSONStdout(model, move string, chain *mcmc.Chain, summary []mcmc.ParamSummary) error {
	return encodeExport(os.Stdout, model, move, chain, summary)
}

func encodeExport(w io.Writer, model, move string, chain *mcmc.Chain, summary []mcmc.ParamSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(model, move, chain, summary))
}

// ExportCSV writes the post-burn-in samples as CSV, one row per
// sample with the parameter columns followed by log_prob.
func ExportCSV(path string, chain *mcmc.Chain) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := append([]string{}, chain.Names()...)
	header = append(header, "log_prob")
	if err := w.Write(header); err != nil {
		return err
	}

	flat := chain.Flat()
	logp := chain.FlatLogProb()
	for i, p := range flat {
		row := make([]string, 0, len(p)+1)
		for _, val := range p {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(logp[i], 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
