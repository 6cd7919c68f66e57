// Package fake generates synthetic mirDIP-style interaction rows for
// tests and demos.
package fake

import (
	"fmt"
	"math/rand"
	"strings"

	mirdip "github.com/slobentanzer/mirdip-adapter"
)

var geneSymbols = []string{
	"TP53", "EGFR", "BRCA1", "BRCA2", "KRAS", "MYC", "PTEN", "AKT1",
	"VEGFA", "TNF", "IL6", "STAT3", "CDKN2A", "NOTCH1", "CTNNB1",
	"PIK3CA", "RB1", "SMAD4", "MDM2", "CCND1", "BCL2", "MAPK1",
	"JUN", "FOS", "HIF1A", "ESR1", "AR", "ABL1", "RUNX1", "GATA3",
}

var sourceTools = []string{
	"TargetScan", "miRanda", "PicTar", "DIANA", "RNA22", "PITA",
	"miRDB", "MirTarget", "RNAhybrid", "MBStar",
}

var mirnaSuffixes = []string{"3p", "5p"}

// RowGenerator produces random but well-formed dataset rows. The same
// seed gives the same row sequence on a given version of Go.
type RowGenerator struct {
	rand *rand.Rand
}

// NewRowGenerator creates a RowGenerator with the given seed.
func NewRowGenerator(seed int64) *RowGenerator {
	return &RowGenerator{rand: rand.New(rand.NewSource(seed))}
}

// Record returns one random row in the default four column layout.
func (g *RowGenerator) Record() string {
	gene := geneSymbols[g.rand.Intn(len(geneSymbols))]
	mirna := fmt.Sprintf("hsa-miR-%d-%s",
		g.rand.Intn(500)+1, mirnaSuffixes[g.rand.Intn(len(mirnaSuffixes))])
	score := g.rand.Float64()

	n := g.rand.Intn(3) + 1
	tools := make([]string, 0, n)
	for len(tools) < n {
		t := sourceTools[g.rand.Intn(len(sourceTools))]
		if !containsStr(tools, t) {
			tools = append(tools, t)
		}
	}
	return fmt.Sprintf("%s\t%s\t%.4f\t%s", gene, mirna, score, strings.Join(tools, ","))
}

func containsStr(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Source is a mirdip.Source which yields generated rows.
type Source struct {
	g    *RowGenerator
	line int
}

// NewSource creates a Source with the given random seed.
func NewSource(seed int64) *Source {
	return &Source{g: NewRowGenerator(seed)}
}

// Record implements mirdip.Source. It never returns io.EOF; cap it with
// tsv.OptSrcLimit-style limiting at the caller (the gen Main uses Rows).
func (s *Source) Record() (mirdip.RawRecord, error) {
	s.line++
	return mirdip.RawRecord{Text: s.g.Record(), File: "fake", Line: s.line}, nil
}
