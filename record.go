package mirdip

// Dataset provenance attached to every emitted node and edge.
const (
	DataSource  = "mirDIP"
	DataVersion = "5.2"
	DataLicence = "free to use, copy, and modify for academic and non-commercial purposes"
)

// Labels of the node and edge types the adapter emits.
const (
	LabelProtein     = "protein"
	LabelMirna       = "microRNA"
	LabelInteraction = "mirna_protein_interaction"
)

// Column names of the mirDIP Bidirectional search distribution. The
// dataset files carry no header row; the column order is listed in the
// README that ships alongside the data (see tsv.ReadColumns).
const (
	ColGeneSymbol    = "GENE_SYMBOL"
	ColMicroRNA      = "MICRORNA"
	ColRank          = "RANK"
	ColScore         = "SCORE"
	ColSourceName    = "SOURCE_NAME"
	ColGeneSymbolOri = "GENE_SYMBOL_ORI"
	ColMicroRNAOri   = "MICRORNA_ORI"
	ColScoreClass    = "SCORE_CLASS"
)

// DefaultColumns is the minimal four column layout: target gene, miRNA,
// integrated score, and the comma separated list of prediction tools
// supporting the interaction.
var DefaultColumns = []string{ColGeneSymbol, ColMicroRNA, ColScore, ColSourceName}

// FullColumns is the complete layout of the Bidirectional search file.
var FullColumns = []string{
	ColGeneSymbol, ColMicroRNA, ColRank, ColScore, ColSourceName,
	ColGeneSymbolOri, ColMicroRNAOri, ColScoreClass,
}

// Record is one parsed interaction row. It is constructed by the Parser,
// never mutated, and discarded once the Mapper has folded it in.
type Record struct {
	GeneSymbol    string
	GeneSymbolOri string
	MicroRNA      string
	MicroRNAOri   string

	Rank     float64
	HasRank  bool
	Score    float64
	HasScore bool

	ScoreClass string

	// Sources is the set of prediction tools reporting this interaction,
	// deduplicated within the row.
	Sources []string

	// Provenance of the row, carried through for error reporting.
	File string
	Line int
}

// ProteinNode is a deduplicated protein (target gene) node. ID is the
// normalized accession, prefixed with the namespace of the identifier
// scheme it belongs to.
type ProteinNode struct {
	ID         string
	GeneSymbol string
}

// MirnaNode is a deduplicated miRNA node keyed by its miRBase-style name.
type MirnaNode struct {
	ID string
}

// InteractionEdge relates one protein to one miRNA. There is at most one
// edge per (protein, miRNA) pair; duplicate rows are merged into it.
type InteractionEdge struct {
	Protein string
	Mirna   string

	Score      float64
	HasScore   bool
	Rank       float64
	HasRank    bool
	ScoreClass string

	// Sources is the union of evidence sources over all merged rows,
	// kept sorted.
	Sources []string

	// seq is bumped every time a row touches this edge so that emission
	// order follows the last merge.
	seq uint64
}
