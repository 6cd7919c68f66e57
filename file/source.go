// Package file provides a mirdip.RawSource over local files and an
// ingest Main for datasets on disk.
package file

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
)

// RawSource hands out a reader per file. For a directory the files are
// visited in name order.
type RawSource struct {
	files []string
	idx   int
}

// NewRawSource returns a RawSource over the file at pathname, or over
// every file in it when pathname is a directory.
func NewRawSource(pathname string) (*RawSource, error) {
	info, err := os.Stat(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "statting path")
	}
	s := &RawSource{}
	if !info.IsDir() {
		s.files = []string{pathname}
		return s, nil
	}
	entries, err := os.ReadDir(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "reading directory")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		s.files = append(s.files, path.Join(pathname, entry.Name()))
	}
	sort.Strings(s.files)
	return s, nil
}

type namedFile struct {
	*os.File
}

func (f *namedFile) Name() string {
	return filepath.Base(f.File.Name())
}

// NextReader implements mirdip.RawSource.
func (s *RawSource) NextReader() (mirdip.NamedReadCloser, error) {
	if s.idx >= len(s.files) {
		return nil, io.EOF
	}
	f, err := os.Open(s.files[s.idx])
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", s.files[s.idx])
	}
	s.idx++
	return &namedFile{f}, nil
}
