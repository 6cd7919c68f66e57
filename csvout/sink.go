// Package csvout implements mirdip.Sink as neo4j-admin bulk import
// files: one CSV per node and edge label, plus the matching neo4j-admin
// invocation script. Use it when the target database is empty and offline
// import is faster than driver writes.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ArrayDelimiter separates elements of array-valued properties, matching
// the --array-delimiter passed in the generated import call.
const ArrayDelimiter = ";"

type nodeRow struct {
	id    string
	props map[string]interface{}
}

type edgeRow struct {
	start, end string
	props      map[string]interface{}
}

// Sink buffers rows per label and writes everything out on Close. The
// property columns of each file are the union of the keys seen for that
// label, so optional properties (score, rank) land in the right column
// no matter which row carried them first.
type Sink struct {
	dir   string
	runID string

	nodes     map[string][]nodeRow
	nodeOrder []string
	edges     map[string][]edgeRow
	edgeOrder []string
}

// NewSink creates dir/<run id>/ and returns a Sink writing into it.
func NewSink(dir string) (*Sink, error) {
	s := &Sink{
		runID: uuid.NewString(),
		nodes: make(map[string][]nodeRow),
		edges: make(map[string][]edgeRow),
	}
	s.dir = filepath.Join(dir, s.runID)
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}
	return s, nil
}

// Dir returns the run directory the files are written into.
func (s *Sink) Dir() string { return s.dir }

// RunID returns the unique id of this output run.
func (s *Sink) RunID() string { return s.runID }

// WriteNode implements mirdip.Sink.
func (s *Sink) WriteNode(label, id string, props map[string]interface{}) error {
	if _, ok := s.nodes[label]; !ok {
		s.nodeOrder = append(s.nodeOrder, label)
	}
	s.nodes[label] = append(s.nodes[label], nodeRow{id: id, props: props})
	return nil
}

// WriteEdge implements mirdip.Sink.
func (s *Sink) WriteEdge(label, start, end string, props map[string]interface{}) error {
	if _, ok := s.edges[label]; !ok {
		s.edgeOrder = append(s.edgeOrder, label)
	}
	s.edges[label] = append(s.edges[label], edgeRow{start: start, end: end, props: props})
	return nil
}

// Abort implements mirdip.Aborter: buffered rows are dropped and the run
// directory removed, so a failed run leaves no files behind.
func (s *Sink) Abort() error {
	s.nodes = make(map[string][]nodeRow)
	s.edges = make(map[string][]edgeRow)
	s.nodeOrder, s.edgeOrder = nil, nil
	return errors.Wrap(os.RemoveAll(s.dir), "removing run directory")
}

// Close writes the CSV files and the neo4j-admin import script.
func (s *Sink) Close() error {
	var nodeFiles, edgeFiles []string
	for _, label := range s.nodeOrder {
		name, err := s.writeNodeFile(label, s.nodes[label])
		if err != nil {
			return errors.Wrapf(err, "writing nodes for %s", label)
		}
		nodeFiles = append(nodeFiles, name)
	}
	for _, label := range s.edgeOrder {
		name, err := s.writeEdgeFile(label, s.edges[label])
		if err != nil {
			return errors.Wrapf(err, "writing edges for %s", label)
		}
		edgeFiles = append(edgeFiles, name)
	}
	return errors.Wrap(s.writeImportCall(nodeFiles, edgeFiles), "writing import call")
}

func (s *Sink) writeNodeFile(label string, rows []nodeRow) (string, error) {
	name := "nodes_" + fileSafe(label) + ".csv"
	keys := propKeys(len(rows), func(i int) map[string]interface{} { return rows[i].props })
	header := append([]string{"id:ID"}, keys...)
	header = append(header, ":LABEL")
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		rec := append([]string{row.id}, propValues(keys, row.props)...)
		records = append(records, append(rec, label))
	}
	return name, s.writeFile(name, header, records)
}

func (s *Sink) writeEdgeFile(label string, rows []edgeRow) (string, error) {
	name := "edges_" + fileSafe(label) + ".csv"
	keys := propKeys(len(rows), func(i int) map[string]interface{} { return rows[i].props })
	header := append([]string{":START_ID", ":END_ID"}, keys...)
	header = append(header, ":TYPE")
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		rec := append([]string{row.start, row.end}, propValues(keys, row.props)...)
		records = append(records, append(rec, label))
	}
	return name, s.writeFile(name, header, records)
}

func (s *Sink) writeFile(name string, header []string, records [][]string) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return errors.Wrap(err, "creating csv file")
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return errors.Wrap(err, "writing header")
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return errors.Wrap(err, "writing records")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.Wrap(err, "flushing csv")
	}
	// a failed close can truncate the file, so it must surface
	return errors.Wrap(f.Close(), "closing csv file")
}

func (s *Sink) writeImportCall(nodeFiles, edgeFiles []string) error {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n# generated by mirdip-adapter, run ")
	b.WriteString(s.runID)
	b.WriteString("\nneo4j-admin database import full \\\n")
	fmt.Fprintf(&b, "  --delimiter=',' --array-delimiter='%s' \\\n", ArrayDelimiter)
	for _, f := range nodeFiles {
		fmt.Fprintf(&b, "  --nodes=%s \\\n", f)
	}
	for _, f := range edgeFiles {
		fmt.Fprintf(&b, "  --relationships=%s \\\n", f)
	}
	b.WriteString("  neo4j\n")
	path := filepath.Join(s.dir, "neo4j-admin-import.sh")
	return os.WriteFile(path, []byte(b.String()), 0755)
}

// propKeys returns the sorted union of property keys over all rows.
func propKeys(n int, props func(i int) map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var keys []string
	for i := 0; i < n; i++ {
		for k := range props(i) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func propValues(keys []string, props map[string]interface{}) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		v, ok := props[k]
		if !ok {
			continue
		}
		out[i] = formatValue(v)
	}
	return out
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ArrayDelimiter)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func fileSafe(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, label)
}
