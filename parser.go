package mirdip

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors for the per-row failure kinds. They are always returned
// wrapped in a *RowError; use errors.Cause to test which kind occurred.
var (
	ErrMalformedRow      = errors.New("malformed row")
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// RowError is a per-row parse or mapping failure with enough context to
// find the row again: source file, line number, and the raw content.
type RowError struct {
	Err  error
	File string
	Line int
	Raw  string
}

func (e *RowError) Error() string {
	return errors.Wrapf(e.Err, "%s:%d: %q", e.File, e.Line, e.Raw).Error()
}

// Cause returns the sentinel the row failed with, so that
// errors.Cause(err) == ErrInvalidScore style checks work through the
// github.com/pkg/errors chain.
func (e *RowError) Cause() error { return errors.Cause(e.Err) }

func rowErr(raw RawRecord, err error) *RowError {
	return &RowError{Err: err, File: raw.File, Line: raw.Line, Raw: raw.Text}
}

// Parser turns raw dataset lines into Records. The zero value is not
// useful; get one from NewParser.
type Parser struct {
	// Delimiter separates fields within a line.
	Delimiter string

	// Columns names the fields in file order. Unrecognized column names
	// are accepted and ignored, matching the mirDIP README which lists a
	// few bookkeeping columns the adapter has no use for.
	Columns []string

	// SourceSeparator splits the evidence source list field.
	SourceSeparator string
}

// NewParser returns a Parser for tab separated data laid out per cols, or
// DefaultColumns when cols is nil.
func NewParser(cols []string) *Parser {
	if cols == nil {
		cols = DefaultColumns
	}
	return &Parser{
		Delimiter:       "\t",
		Columns:         cols,
		SourceSeparator: ",",
	}
}

// Parse splits one raw line and validates its fields. Failures come back
// as a *RowError wrapping ErrMalformedRow (field count mismatch) or
// ErrInvalidScore (rank or score not a finite non-negative number).
func (p *Parser) Parse(raw RawRecord) (Record, error) {
	rec := Record{File: raw.File, Line: raw.Line}
	fields := strings.Split(raw.Text, p.Delimiter)
	if len(fields) != len(p.Columns) {
		return rec, rowErr(raw, errors.Wrapf(ErrMalformedRow, "want %d fields, got %d", len(p.Columns), len(fields)))
	}
	for i, col := range p.Columns {
		val := strings.TrimSpace(fields[i])
		switch col {
		case ColGeneSymbol:
			rec.GeneSymbol = val
		case ColGeneSymbolOri:
			rec.GeneSymbolOri = val
		case ColMicroRNA:
			rec.MicroRNA = val
		case ColMicroRNAOri:
			rec.MicroRNAOri = val
		case ColScoreClass:
			rec.ScoreClass = val
		case ColSourceName:
			rec.Sources = splitSources(val, p.SourceSeparator)
		case ColRank:
			if val == "" {
				continue
			}
			f, err := parseScore(val)
			if err != nil {
				return rec, rowErr(raw, errors.Wrapf(ErrInvalidScore, "rank %q", val))
			}
			rec.Rank, rec.HasRank = f, true
		case ColScore:
			if val == "" {
				continue
			}
			f, err := parseScore(val)
			if err != nil {
				return rec, rowErr(raw, errors.Wrapf(ErrInvalidScore, "score %q", val))
			}
			rec.Score, rec.HasScore = f, true
		}
	}
	if rec.GeneSymbol == "" || rec.MicroRNA == "" {
		return rec, rowErr(raw, errors.Wrap(ErrMalformedRow, "empty accession field"))
	}
	return rec, nil
}

func parseScore(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, errors.Errorf("score out of range: %v", f)
	}
	return f, nil
}

func splitSources(val, sep string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, sep)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
