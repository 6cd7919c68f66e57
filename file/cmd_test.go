package file_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/slobentanzer/mirdip-adapter/file"
)

var data = `TP53	hsa-miR-21-5p	0.8	TargetScan
TP53	hsa-miR-21-5p	0.5	miRanda
EGFR	hsa-miR-7-5p	0.4	PITA
BROKEN ROW WITH NO TABS
`

func newFileWithData(t *testing.T, data string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "dataset.txt")
	if err := os.WriteFile(name, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestFileIngestToCSV(t *testing.T) {
	out := t.TempDir()
	m := file.NewMain()
	m.Path = newFileWithData(t, data)
	m.Sink = "csv"
	m.OutDir = out

	if err := m.Run(); err != nil {
		t.Fatalf("running ingester: %v", err)
	}

	runDirs, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(runDirs) != 1 {
		t.Fatalf("expected one run dir, got %d", len(runDirs))
	}
	runDir := filepath.Join(out, runDirs[0].Name())

	edges := readCSV(t, filepath.Join(runDir, "edges_mirna_protein_interaction.csv"))
	// header + two deduplicated edges; the bad row was skipped
	if len(edges) != 3 {
		t.Fatalf("expected 2 edges, got %d: %v", len(edges)-1, edges)
	}
	var tp53 []string
	for _, row := range edges[1:] {
		if row[0] == "TP53" {
			tp53 = row
		}
	}
	if tp53 == nil {
		t.Fatalf("no TP53 edge in %v", edges)
	}
	found := false
	for _, cell := range tp53 {
		if cell == "TargetScan;miRanda" {
			found = true
		}
	}
	if !found {
		t.Fatalf("evidence not unioned: %v", tp53)
	}

	proteins := readCSV(t, filepath.Join(runDir, "nodes_protein.csv"))
	if len(proteins) != 3 {
		t.Fatalf("expected 2 protein nodes, got %d", len(proteins)-1)
	}
	mirnas := readCSV(t, filepath.Join(runDir, "nodes_microRNA.csv"))
	if len(mirnas) != 3 {
		t.Fatalf("expected 2 miRNA nodes, got %d", len(mirnas)-1)
	}
}

func TestFileIngestStrict(t *testing.T) {
	out := t.TempDir()
	m := file.NewMain()
	m.Path = newFileWithData(t, data)
	m.Sink = "csv"
	m.OutDir = out
	m.Strict = true

	if err := m.Run(); err == nil {
		t.Fatal("expected strict run to fail on the malformed row")
	}

	// the aborted run removed its run directory
	runDirs, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(runDirs) != 0 {
		t.Fatalf("expected no output from a failed run, got %v", runDirs)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return records
}
