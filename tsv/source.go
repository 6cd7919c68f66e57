// Package tsv scans delimited text records out of any mirdip.RawSource.
package tsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
)

// Source reads one line at a time from each reader a RawSource hands out,
// skipping blank lines and tracking line numbers per file. It is a
// forward-only pass; restarting means constructing a new Source over a
// fresh RawSource.
type Source struct {
	rs mirdip.RawSource

	cur   mirdip.NamedReadCloser
	scan  *bufio.Scanner
	line  int
	count int

	skipHeader bool
	limit      int
}

// SrcOption is a functional option for the tsv Source.
type SrcOption func(s *Source)

// OptSrcSkipHeader makes the source discard the first line of every file.
// The mirDIP distribution carries no header row, so this is off by
// default.
func OptSrcSkipHeader() SrcOption {
	return func(s *Source) {
		s.skipHeader = true
	}
}

// OptSrcLimit stops the source after n records. Used for test-mode runs
// over the full dataset.
func OptSrcLimit(n int) SrcOption {
	return func(s *Source) {
		s.limit = n
	}
}

// NewSource returns a Source scanning records out of rs.
func NewSource(rs mirdip.RawSource, opts ...SrcOption) *Source {
	s := &Source{rs: rs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record implements mirdip.Source.
func (s *Source) Record() (mirdip.RawRecord, error) {
	if s.limit > 0 && s.count >= s.limit {
		s.closeCur()
		return mirdip.RawRecord{}, io.EOF
	}
	for {
		if s.cur == nil {
			cur, err := s.rs.NextReader()
			if err != nil {
				return mirdip.RawRecord{}, err
			}
			s.cur = cur
			s.scan = bufio.NewScanner(cur)
			s.line = 0
			if s.skipHeader && s.scan.Scan() {
				s.line++
			}
		}
		for s.scan.Scan() {
			s.line++
			txt := s.scan.Text()
			if strings.TrimSpace(txt) == "" {
				continue
			}
			s.count++
			return mirdip.RawRecord{Text: txt, File: s.cur.Name(), Line: s.line}, nil
		}
		if err := s.scan.Err(); err != nil {
			name := s.cur.Name()
			s.closeCur()
			return mirdip.RawRecord{}, errors.Wrapf(err, "scanning %s", name)
		}
		s.closeCur()
	}
}

// Close releases the current reader. Safe to call if the caller stops
// pulling records early.
func (s *Source) Close() error {
	s.closeCur()
	return nil
}

func (s *Source) closeCur() {
	if s.cur != nil {
		s.cur.Close()
		s.cur = nil
		s.scan = nil
	}
}

// ReadColumns parses the column listing out of the README that ships with
// the mirDIP distribution: a title line followed by one column name per
// line. The returned slice can be handed to mirdip.NewParser.
func ReadColumns(r io.Reader) ([]string, error) {
	scan := bufio.NewScanner(r)
	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return nil, errors.Wrap(err, "reading title line")
		}
		return nil, errors.New("empty column listing")
	}
	var cols []string
	for scan.Scan() {
		col := strings.TrimSpace(scan.Text())
		if col == "" {
			continue
		}
		cols = append(cols, col)
	}
	if err := scan.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning column listing")
	}
	if err := validateColumns(cols); err != nil {
		return nil, err
	}
	return cols, nil
}

func validateColumns(cols []string) error {
	if len(cols) == 0 {
		return errors.New("column listing names no columns")
	}
	seen := make(map[string]int)
	for i, c := range cols {
		if pos, exists := seen[c]; exists {
			return errors.Errorf("%s appears at both %d and %d in column listing", c, pos, i)
		}
		seen[c] = i
	}
	return nil
}
