package mirdip_test

import (
	"reflect"
	"testing"

	mirdip "github.com/slobentanzer/mirdip-adapter"
	"github.com/slobentanzer/mirdip-adapter/mock"
)

func mustAdd(t *testing.T, m *mirdip.Mapper, recs ...mirdip.Record) {
	t.Helper()
	for _, rec := range recs {
		if err := m.Add(rec); err != nil {
			t.Fatalf("adding record %#v: %v", rec, err)
		}
	}
}

func rec(gene, mirna string, score float64, sources ...string) mirdip.Record {
	return mirdip.Record{
		GeneSymbol: gene,
		MicroRNA:   mirna,
		Score:      score,
		HasScore:   true,
		Sources:    sources,
	}
}

func TestMapperMergesDuplicateEdges(t *testing.T) {
	m := mirdip.NewMapper(mirdip.ScoreMax)
	mustAdd(t, m,
		rec("P1", "hsa-miR-1-5p", 0.8, "sourceA"),
		rec("P1", "hsa-miR-1-5p", 0.5, "sourceB"),
	)

	if m.Proteins() != 1 || m.Mirnas() != 1 || m.Edges() != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d", m.Proteins(), m.Mirnas(), m.Edges())
	}

	sink := &mock.Sink{}
	if err := m.Emit(sink); err != nil {
		t.Fatalf("emitting: %v", err)
	}
	edges := sink.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	e := edges[0]
	if e.Start != "P1" || e.End != "hsa-miR-1-5p" {
		t.Fatalf("unexpected endpoints: %#v", e)
	}
	if got := e.Props["sources"]; !reflect.DeepEqual(got, []string{"sourceA", "sourceB"}) {
		t.Fatalf("expected evidence union, got %#v", got)
	}
	if got := e.Props["score"]; got != 0.8 {
		t.Fatalf("expected max score 0.8, got %v", got)
	}
}

func TestMapperScorePolicies(t *testing.T) {
	tests := []struct {
		policy   mirdip.ScorePolicy
		expScore float64
	}{
		{mirdip.ScoreMax, 0.8},
		{mirdip.ScoreSum, 1.3},
		{mirdip.ScoreOverwrite, 0.5},
	}
	for _, test := range tests {
		t.Run(test.policy.String(), func(t *testing.T) {
			m := mirdip.NewMapper(test.policy)
			mustAdd(t, m,
				rec("P1", "hsa-miR-1-5p", 0.8, "sourceA"),
				rec("P1", "hsa-miR-1-5p", 0.5, "sourceB"),
			)
			sink := &mock.Sink{}
			if err := m.Emit(sink); err != nil {
				t.Fatalf("emitting: %v", err)
			}
			got := sink.Edges()[0].Props["score"].(float64)
			if got < test.expScore-1e-9 || got > test.expScore+1e-9 {
				t.Fatalf("expected score %v, got %v", test.expScore, got)
			}
		})
	}
}

func TestMapperEmitOrdering(t *testing.T) {
	m := mirdip.NewMapper(mirdip.ScoreMax)
	mustAdd(t, m,
		rec("P1", "hsa-miR-1-5p", 0.1, "a"),
		rec("P2", "hsa-miR-2-5p", 0.2, "a"),
		rec("P3", "hsa-miR-3-5p", 0.3, "a"),
		// re-merging the first pair moves its edge to the back
		rec("P1", "hsa-miR-1-5p", 0.9, "b"),
	)
	sink := &mock.Sink{}
	if err := m.Emit(sink); err != nil {
		t.Fatalf("emitting: %v", err)
	}

	// every node comes before the first edge
	seenEdge := false
	nodeIDs := map[string]bool{}
	for _, c := range sink.Calls {
		switch c.Kind {
		case "node":
			if seenEdge {
				t.Fatalf("node %s written after an edge", c.ID)
			}
			nodeIDs[c.ID] = true
		case "edge":
			seenEdge = true
			if !nodeIDs[c.Start] || !nodeIDs[c.End] {
				t.Fatalf("edge %s->%s references unwritten node", c.Start, c.End)
			}
		}
	}

	// nodes in discovery order
	nodes := sink.Nodes()
	expNodes := []string{"P1", "P2", "P3", "hsa-miR-1-5p", "hsa-miR-2-5p", "hsa-miR-3-5p"}
	var gotNodes []string
	for _, n := range nodes {
		gotNodes = append(gotNodes, n.ID)
	}
	if !reflect.DeepEqual(gotNodes, expNodes) {
		t.Fatalf("expected node order %v, got %v", expNodes, gotNodes)
	}

	// edges in last-merge order: P2, P3, then P1 (remerged last)
	var gotEdges []string
	for _, e := range sink.Edges() {
		gotEdges = append(gotEdges, e.Start)
	}
	if !reflect.DeepEqual(gotEdges, []string{"P2", "P3", "P1"}) {
		t.Fatalf("expected edge order [P2 P3 P1], got %v", gotEdges)
	}
}

func TestMapperFirstOccurrenceWinsDisplay(t *testing.T) {
	tr := mirdip.NewMapTranslator(map[string][]string{
		"TP53":  {"P04637"},
		"TRP53": {"P04637"},
	})
	m := mirdip.NewMapper(mirdip.ScoreMax)
	m.Translator = tr
	mustAdd(t, m,
		rec("TP53", "hsa-miR-1-5p", 0.1, "a"),
		rec("TRP53", "hsa-miR-2-5p", 0.2, "a"),
	)
	sink := &mock.Sink{}
	if err := m.Emit(sink); err != nil {
		t.Fatalf("emitting: %v", err)
	}
	var prot *mock.Call
	nodes := sink.Nodes()
	for i := range nodes {
		if nodes[i].Label == mirdip.LabelProtein {
			prot = &nodes[i]
		}
	}
	if prot == nil {
		t.Fatal("no protein node emitted")
	}
	if prot.ID != "uniprot:P04637" {
		t.Fatalf("unexpected protein id %q", prot.ID)
	}
	if got := prot.Props["gene_symbol"]; got != "TP53" {
		t.Fatalf("expected first symbol TP53 to win, got %v", got)
	}
}

func TestMapperTranslationFallbackAndUnmapped(t *testing.T) {
	tr := mirdip.NewMapTranslator(map[string][]string{
		"OLDNAME": {"Q99999"},
	})
	m := mirdip.NewMapper(mirdip.ScoreMax)
	m.Translator = tr

	// harmonized symbol unknown, original symbol maps
	fallback := rec("NEWNAME", "hsa-miR-1-5p", 0.4, "a")
	fallback.GeneSymbolOri = "OLDNAME"
	// neither symbol maps
	unmapped := rec("NOWHERE", "hsa-miR-2-5p", 0.4, "a")

	mustAdd(t, m, fallback, unmapped)

	if m.Proteins() != 1 {
		t.Fatalf("expected 1 protein, got %d", m.Proteins())
	}
	if m.Edges() != 1 {
		t.Fatalf("expected 1 edge, got %d", m.Edges())
	}
	if got := m.Unmapped(); !reflect.DeepEqual(got, []string{"NOWHERE"}) {
		t.Fatalf("expected unmapped [NOWHERE], got %v", got)
	}
}

func TestMapperAmbiguousSymbol(t *testing.T) {
	tr := mirdip.NewMapTranslator(map[string][]string{
		"DUP": {"P11111", "P22222"},
	})
	m := mirdip.NewMapper(mirdip.ScoreMax)
	m.Translator = tr
	mustAdd(t, m, rec("DUP", "hsa-miR-1-5p", 0.4, "a"))

	if m.Proteins() != 2 {
		t.Fatalf("expected a node per accession, got %d", m.Proteins())
	}
	if m.Edges() != 2 {
		t.Fatalf("expected an edge per accession, got %d", m.Edges())
	}
}

func TestMapperRejectsBadIdentifiers(t *testing.T) {
	m := mirdip.NewMapper(mirdip.ScoreMax)
	err := m.Add(rec("not a symbol", "hsa-miR-1-5p", 0.4, "a"))
	if err == nil {
		t.Fatal("expected identifier error")
	}
	if _, ok := err.(*mirdip.RowError); !ok {
		t.Fatalf("expected *RowError, got %T", err)
	}
}
