package mirdip

import (
	"sort"

	"github.com/pkg/errors"
)

// ScorePolicy says how the score of a duplicate edge is reconciled with
// the score already recorded for the (protein, miRNA) pair.
type ScorePolicy int

const (
	// ScoreMax keeps the strongest evidence. This is the default.
	ScoreMax ScorePolicy = iota
	// ScoreSum accumulates scores across rows.
	ScoreSum
	// ScoreOverwrite keeps whatever the most recent row said.
	ScoreOverwrite
)

func (p ScorePolicy) String() string {
	switch p {
	case ScoreMax:
		return "max"
	case ScoreSum:
		return "sum"
	case ScoreOverwrite:
		return "overwrite"
	}
	return "unknown"
}

// ParseScorePolicy parses the policy names accepted on the command line.
func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch s {
	case "max", "":
		return ScoreMax, nil
	case "sum":
		return ScoreSum, nil
	case "overwrite":
		return ScoreOverwrite, nil
	}
	return ScoreMax, errors.Errorf("unknown score policy %q (want max, sum, or overwrite)", s)
}

// UniprotPrefix namespaces protein node ids that went through symbol
// translation, matching the id scheme of the original adapter.
const UniprotPrefix = "uniprot:"

type pairKey struct {
	protein string
	mirna   string
}

// Mapper folds parsed Records into a deduplicated graph: one node per
// normalized accession, at most one edge per (protein, miRNA) pair.
// A Mapper is owned by a single goroutine; none of its methods are safe
// for concurrent use.
type Mapper struct {
	// Policy controls duplicate-edge score reconciliation.
	Policy ScorePolicy

	// Translator, when set, maps gene symbols to UniProt accessions and
	// protein nodes are keyed by accession. Symbols the translator can't
	// resolve (directly or via the row's original symbol) are counted
	// and their rows skipped. When nil, the normalized gene symbol is
	// the protein identity.
	Translator Translator

	proteins  map[string]*ProteinNode
	protOrder []string
	mirnas    map[string]*MirnaNode
	mirOrder  []string
	edges     map[pairKey]*InteractionEdge
	seq       uint64
	unmapped  map[string]struct{}
}

// NewMapper returns an empty Mapper with the given reconciliation policy.
func NewMapper(policy ScorePolicy) *Mapper {
	return &Mapper{
		Policy:   policy,
		proteins: make(map[string]*ProteinNode),
		mirnas:   make(map[string]*MirnaNode),
		edges:    make(map[pairKey]*InteractionEdge),
		unmapped: make(map[string]struct{}),
	}
}

// Add folds one record into the graph. Identifier failures come back as a
// *RowError wrapping ErrInvalidIdentifier; rows whose gene symbol can't
// be translated are skipped silently (but counted, see Unmapped).
func (m *Mapper) Add(rec Record) error {
	raw := RawRecord{Text: rec.GeneSymbol + "/" + rec.MicroRNA, File: rec.File, Line: rec.Line}
	symbol, err := NormalizeID(rec.GeneSymbol, ProteinID)
	if err != nil {
		return rowErr(raw, err)
	}
	mirna, err := NormalizeID(rec.MicroRNA, MirnaID)
	if err != nil {
		return rowErr(raw, err)
	}

	protIDs, err := m.proteinIDs(symbol, rec.GeneSymbolOri)
	if err != nil {
		return errors.Wrapf(err, "translating %q", symbol)
	}
	if len(protIDs) == 0 {
		m.unmapped[symbol] = struct{}{}
		return nil
	}

	m.touchMirna(mirna)
	for _, pid := range protIDs {
		m.touchProtein(pid, symbol)
		m.mergeEdge(pid, mirna, rec)
	}
	return nil
}

// proteinIDs resolves the identity (or identities) of the protein node
// for a normalized gene symbol. Translation falls back to the row's
// original symbol when the harmonized one is unknown, which is what the
// original adapter did with its pypath lookups.
func (m *Mapper) proteinIDs(symbol, symbolOri string) ([]string, error) {
	if m.Translator == nil {
		return []string{symbol}, nil
	}
	accs, err := m.Translator.Accessions(symbol)
	if err != nil {
		return nil, err
	}
	if len(accs) == 0 && symbolOri != "" && symbolOri != symbol {
		ori, err := NormalizeID(symbolOri, ProteinID)
		if err == nil {
			accs, err = m.Translator.Accessions(ori)
			if err != nil {
				return nil, err
			}
		}
	}
	ids := make([]string, len(accs))
	for i, acc := range accs {
		ids[i] = UniprotPrefix + acc
	}
	return ids, nil
}

func (m *Mapper) touchProtein(id, symbol string) {
	if _, ok := m.proteins[id]; ok {
		return // first occurrence wins for display attributes
	}
	m.proteins[id] = &ProteinNode{ID: id, GeneSymbol: symbol}
	m.protOrder = append(m.protOrder, id)
}

func (m *Mapper) touchMirna(id string) {
	if _, ok := m.mirnas[id]; ok {
		return
	}
	m.mirnas[id] = &MirnaNode{ID: id}
	m.mirOrder = append(m.mirOrder, id)
}

func (m *Mapper) mergeEdge(protein, mirna string, rec Record) {
	m.seq++
	key := pairKey{protein: protein, mirna: mirna}
	e, ok := m.edges[key]
	if !ok {
		e = &InteractionEdge{
			Protein:    protein,
			Mirna:      mirna,
			Score:      rec.Score,
			HasScore:   rec.HasScore,
			Rank:       rec.Rank,
			HasRank:    rec.HasRank,
			ScoreClass: rec.ScoreClass,
			Sources:    append([]string(nil), rec.Sources...),
			seq:        m.seq,
		}
		sort.Strings(e.Sources)
		m.edges[key] = e
		return
	}

	e.seq = m.seq
	for _, s := range rec.Sources {
		if !contains(e.Sources, s) {
			e.Sources = append(e.Sources, s)
		}
	}
	sort.Strings(e.Sources)

	if !rec.HasScore {
		return
	}
	switch {
	case !e.HasScore:
		e.Score, e.HasScore = rec.Score, true
		e.Rank, e.HasRank = rec.Rank, rec.HasRank
		e.ScoreClass = rec.ScoreClass
	case m.Policy == ScoreSum:
		e.Score += rec.Score
	case m.Policy == ScoreOverwrite,
		m.Policy == ScoreMax && rec.Score > e.Score:
		e.Score = rec.Score
		e.Rank, e.HasRank = rec.Rank, rec.HasRank
		e.ScoreClass = rec.ScoreClass
	}
}

// Proteins returns the number of deduplicated protein nodes.
func (m *Mapper) Proteins() int { return len(m.proteins) }

// Mirnas returns the number of deduplicated miRNA nodes.
func (m *Mapper) Mirnas() int { return len(m.mirnas) }

// Edges returns the number of deduplicated interaction edges.
func (m *Mapper) Edges() int { return len(m.edges) }

// Unmapped returns the sorted gene symbols the translator could not
// resolve.
func (m *Mapper) Unmapped() []string {
	out := make([]string, 0, len(m.unmapped))
	for s := range m.unmapped {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Emit writes the graph to sink: every node first, in the order it was
// discovered, then every edge in the order its defining record was last
// merged. An edge is never written before both its endpoints.
func (m *Mapper) Emit(sink Sink) error {
	for _, id := range m.protOrder {
		n := m.proteins[id]
		props := map[string]interface{}{
			"gene_symbol": n.GeneSymbol,
			"source":      DataSource,
			"version":     DataVersion,
			"licence":     DataLicence,
		}
		if err := sink.WriteNode(LabelProtein, n.ID, props); err != nil {
			return errors.Wrapf(err, "writing protein %s", n.ID)
		}
	}
	for _, id := range m.mirOrder {
		props := map[string]interface{}{
			"source":  DataSource,
			"version": DataVersion,
			"licence": DataLicence,
		}
		if err := sink.WriteNode(LabelMirna, id, props); err != nil {
			return errors.Wrapf(err, "writing miRNA %s", id)
		}
	}

	ordered := make([]*InteractionEdge, 0, len(m.edges))
	for _, e := range m.edges {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	for _, e := range ordered {
		props := map[string]interface{}{
			"sources":              e.Sources,
			"bidirectional_search": true,
			"version":              DataSource + " version " + DataVersion,
			"licence":              DataLicence,
		}
		if e.HasScore {
			props["score"] = e.Score
		}
		if e.HasRank {
			props["rank"] = e.Rank
		}
		if e.ScoreClass != "" {
			props["score_class"] = e.ScoreClass
		}
		if err := sink.WriteEdge(LabelInteraction, e.Protein, e.Mirna, props); err != nil {
			return errors.Wrapf(err, "writing edge %s-%s", e.Protein, e.Mirna)
		}
	}
	return nil
}
