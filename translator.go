package mirdip

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Translator maps a gene symbol to the UniProt accessions it stands for.
// A symbol may map to zero accessions (unknown) or several (ambiguous
// symbols map to every matching protein, and an edge is emitted for each).
type Translator interface {
	Accessions(symbol string) ([]string, error)
}

// MapTranslator is an in-memory Translator backed by a plain map.
type MapTranslator struct {
	m map[string][]string
}

// NewMapTranslator wraps the given symbol to accession mapping.
func NewMapTranslator(m map[string][]string) *MapTranslator {
	if m == nil {
		m = make(map[string][]string)
	}
	return &MapTranslator{m: m}
}

// Accessions implements Translator.
func (t *MapTranslator) Accessions(symbol string) ([]string, error) {
	return t.m[symbol], nil
}

// Len returns the number of mapped symbols.
func (t *MapTranslator) Len() int { return len(t.m) }

// LoadMappingFile reads a two column tab separated file of
// symbol<TAB>accession pairs (one pair per line, repeated symbols
// accumulate) into a MapTranslator. Blank lines and lines starting with
// '#' are skipped.
func LoadMappingFile(path string) (*MapTranslator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening mapping file")
	}
	defer f.Close()
	t, err := ReadMapping(f)
	return t, errors.Wrapf(err, "reading %s", path)
}

// ReadMapping parses symbol/accession pairs from r.
func ReadMapping(r io.Reader) (*MapTranslator, error) {
	m := make(map[string][]string)
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		txt := strings.TrimSpace(scan.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		fields := strings.Split(txt, "\t")
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want 2 fields, got %d", line, len(fields))
		}
		sym := strings.TrimSpace(fields[0])
		acc := strings.TrimSpace(fields[1])
		if sym == "" || acc == "" {
			return nil, errors.Errorf("line %d: empty field", line)
		}
		if !contains(m[sym], acc) {
			m[sym] = append(m[sym], acc)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning mapping")
	}
	for _, accs := range m {
		sort.Strings(accs)
	}
	return NewMapTranslator(m), nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// encodeAccessions and decodeAccessions are the serialization used by the
// persistent translator caches. The leading '@' keeps a cached negative
// result (no accessions) distinguishable from a missing cache entry.
func encodeAccessions(accs []string) []byte {
	return []byte("@" + strings.Join(accs, ","))
}

func decodeAccessions(b []byte) []string {
	s := strings.TrimPrefix(string(b), "@")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
