package mirdip

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// IDKind selects the accession convention NormalizeID validates against.
type IDKind int

const (
	// ProteinID accepts HGNC gene symbols and UniProt accessions.
	ProteinID IDKind = iota
	// MirnaID accepts miRNA accessions. miRBase-style names get their
	// casing canonicalized; anything else passes through as-is.
	MirnaID
)

func (k IDKind) String() string {
	switch k {
	case ProteinID:
		return "protein"
	case MirnaID:
		return "miRNA"
	}
	return "unknown"
}

var (
	geneSymbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_.@-]*$`)
	// miRNA accessions in the dataset are too varied to pin down beyond
	// "one token": any non-empty id free of whitespace is accepted.
	mirnaPattern = regexp.MustCompile(`^\S+$`)
	// miRBase naming: species prefix, mir/miR/let/lin family, then
	// dash separated numeric-ish segments (e.g. hsa-miR-21-5p). Only
	// names of this shape get their casing canonicalized.
	mirbasePattern = regexp.MustCompile(`^[a-z]{3,4}-(mir|miR|let|lin)-[0-9A-Za-z]+(-[0-9A-Za-z*]+)*$`)
)

// NormalizeID canonicalizes an accession per the convention for kind and
// validates it. Normalizing an already-normalized id returns it unchanged.
// Failures wrap ErrInvalidIdentifier.
func NormalizeID(raw string, kind IDKind) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.Wrapf(ErrInvalidIdentifier, "empty %s id", kind)
	}
	switch kind {
	case ProteinID:
		id = strings.ToUpper(id)
		if !geneSymbolPattern.MatchString(id) {
			return "", errors.Wrapf(ErrInvalidIdentifier, "%s id %q", kind, raw)
		}
	case MirnaID:
		if !mirnaPattern.MatchString(id) {
			return "", errors.Wrapf(ErrInvalidIdentifier, "%s id %q", kind, raw)
		}
		if c := normalizeMirnaCase(id); mirbasePattern.MatchString(c) {
			id = c
		}
	default:
		return "", errors.Wrapf(ErrInvalidIdentifier, "unknown id kind %d", kind)
	}
	return id, nil
}

// normalizeMirnaCase fixes up names that arrive fully upper or lower cased
// (HSA-MIR-21-5P) without touching names that already follow miRBase
// casing. The species prefix and family are case-folded; mature "miR"
// keeps its capital R, everything after the family is lowercased only
// when the whole name was shouting.
func normalizeMirnaCase(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return id
	}
	shouting := id == strings.ToUpper(id)
	parts[0] = strings.ToLower(parts[0])
	switch strings.ToLower(parts[1]) {
	case "mir":
		if parts[1] != "mir" {
			parts[1] = "miR"
		}
	case "let", "lin":
		parts[1] = strings.ToLower(parts[1])
	}
	if shouting {
		for i := 2; i < len(parts); i++ {
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, "-")
}
