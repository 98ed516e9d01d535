package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/papari-man/LVILC/internal/mcmc"
)

func testChain() *mcmc.Chain {
	chain := mcmc.NewChain([]string{"H0", "M_bh", "t_fall"}, 2, 1, 42)
	chain.Append(
		[]mcmc.Params{{-6.7, 1e23, 13.8}, {-6.8, 1.1e23, 13.9}},
		[]float64{-86.0, -87.5},
	)
	chain.Append(
		[]mcmc.Params{{-6.6, 9e22, 13.7}, {-6.8, 1.1e23, 13.9}},
		[]float64{-85.5, -87.5},
	)
	chain.SetAcceptance(0.5)
	return chain
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	metrics := map[string]float64{"acceptance": 0.5}
	runID, err := st.Save("lvilc", "stretch", testChain(), nil, metrics)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "lvilc" {
		t.Errorf("expected model 'lvilc', got '%s'", meta.Model)
	}
	if meta.Move != "stretch" {
		t.Errorf("expected move 'stretch', got '%s'", meta.Move)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Walkers != 2 || meta.Steps != 2 || meta.BurnIn != 1 {
		t.Errorf("unexpected run shape: %d walkers, %d steps, %d burn-in",
			meta.Walkers, meta.Steps, meta.BurnIn)
	}
	if len(meta.Params) != 3 || meta.Params[0] != "H0" {
		t.Errorf("unexpected params: %v", meta.Params)
	}
	if meta.Metrics["acceptance"] != 0.5 {
		t.Errorf("expected acceptance 0.5, got %f", meta.Metrics["acceptance"])
	}
}

func TestStoreChainRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	orig := testChain()
	runID, err := st.Save("lvilc", "stretch", orig, nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	chain, err := st.LoadChain(runID)
	if err != nil {
		t.Fatalf("load chain failed: %v", err)
	}

	if chain.Len() != orig.Len() {
		t.Fatalf("expected %d sweeps, got %d", orig.Len(), chain.Len())
	}
	if chain.Walkers() != orig.Walkers() || chain.BurnIn() != orig.BurnIn() {
		t.Errorf("run shape not preserved")
	}

	for step := 0; step < orig.Len(); step++ {
		for walker := 0; walker < orig.Walkers(); walker++ {
			want := orig.At(step, walker)
			got := chain.At(step, walker)
			for j := range want {
				if got[j] != want[j] {
					t.Errorf("sample (%d,%d)[%d]: expected %v, got %v",
						step, walker, j, want[j], got[j])
				}
			}
			if chain.LogProbAt(step, walker) != orig.LogProbAt(step, walker) {
				t.Errorf("log prob (%d,%d) not preserved", step, walker)
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("lvilc", "stretch", testChain(), nil, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("lcdm", "walk", testChain(), nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	summary := []mcmc.ParamSummary{
		{Name: "H0", Median: -6.7, Std: 0.8, P16: -7.5, P84: -5.9, Best: -6.73},
	}
	runID, err := st.Save("lvilc", "stretch", testChain(), summary, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "chain.csv", "summary.json"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreLoadSummary(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	summary := []mcmc.ParamSummary{
		{Name: "H0", Median: -6.7, Std: 0.8, P16: -7.5, P84: -5.9, Best: -6.73},
		{Name: "t_fall", Median: 13.8, Std: 1.1, P16: 12.7, P84: 14.9, Best: 13.75},
	}
	withSummary, err := st.Save("lvilc", "stretch", testChain(), summary, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	without, err := st.Save("lvilc", "stretch", testChain(), nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadSummary(withSummary)
	if err != nil {
		t.Fatalf("load summary failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Name != "H0" || loaded[1].Median != 13.8 {
		t.Errorf("summary not preserved: %+v", loaded)
	}

	loaded, err = st.LoadSummary(without)
	if err != nil {
		t.Fatalf("expected no error for missing summary, got %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil summary, got %+v", loaded)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	err := ExportJSON(path, "lvilc", "stretch", testChain(), nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if export.Model != "lvilc" {
		t.Errorf("expected model lvilc, got %s", export.Model)
	}
	if len(export.Samples) != 2 {
		t.Errorf("expected 2 post-burn-in samples, got %d", len(export.Samples))
	}
	if export.Acceptance != 0.5 {
		t.Errorf("expected acceptance 0.5, got %f", export.Acceptance)
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")

	if err := ExportCSV(path, testChain()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "H0" || records[0][3] != "log_prob" {
		t.Errorf("unexpected header: %v", records[0])
	}
}
