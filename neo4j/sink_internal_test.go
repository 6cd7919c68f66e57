package neo4j

import (
	"strings"
	"testing"
)

func TestNodeQuery(t *testing.T) {
	q := nodeQuery("protein")
	if !strings.Contains(q, "MERGE (n:`protein` {id: row.id})") {
		t.Fatalf("unexpected query: %s", q)
	}
	if !strings.HasPrefix(q, "UNWIND $rows AS row") {
		t.Fatalf("unexpected query: %s", q)
	}
}

func TestEdgeQuery(t *testing.T) {
	q := edgeQuery("mirna_protein_interaction")
	for _, want := range []string{
		"MATCH (a {id: row.start})",
		"MATCH (b {id: row.end})",
		"MERGE (a)-[r:`mirna_protein_interaction`]->(b)",
		"SET r += row.props",
	} {
		if !strings.Contains(q, want) {
			t.Fatalf("query missing %q: %s", want, q)
		}
	}
}

func TestEscapeLabel(t *testing.T) {
	tests := []struct {
		in  string
		exp string
	}{
		{"protein", "`protein`"},
		{"with`tick", "`with``tick`"},
	}
	for _, test := range tests {
		if got := escapeLabel(test.in); got != test.exp {
			t.Fatalf("expected %s, got %s", test.exp, got)
		}
	}
}

func TestSinkBuffersEdgesUntilClose(t *testing.T) {
	// construct directly; no driver calls happen until a flush
	s := &Sink{
		batchSize: 10,
		nodes:     make(map[string][]map[string]interface{}),
		edges:     make(map[string][]map[string]interface{}),
	}
	err := s.WriteEdge("rel", "a", "b", map[string]interface{}{"x": 1})
	if err != nil {
		t.Fatalf("writing edge: %v", err)
	}
	if len(s.edges["rel"]) != 1 {
		t.Fatalf("edge not buffered: %v", s.edges)
	}
}

func TestSinkAbortDropsBuffers(t *testing.T) {
	s := &Sink{
		batchSize: 10,
		nodes:     make(map[string][]map[string]interface{}),
		edges:     make(map[string][]map[string]interface{}),
	}
	if err := s.WriteEdge("rel", "a", "b", map[string]interface{}{"x": 1}); err != nil {
		t.Fatalf("writing edge: %v", err)
	}
	if err := s.Abort(); err != nil {
		t.Fatalf("aborting: %v", err)
	}
	if len(s.edges) != 0 || len(s.edgeOrder) != 0 {
		t.Fatalf("buffers not dropped: %v %v", s.edges, s.edgeOrder)
	}
}
