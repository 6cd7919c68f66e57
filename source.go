package mirdip

import "io"

// Source is the interface for getting raw dataset records one at a time.
// Sources return io.EOF when the underlying data is exhausted; any other
// error is treated as fatal by the Ingester.
type Source interface {
	Record() (RawRecord, error)
}

// RawRecord is one unparsed line of the dataset along with where it came
// from. File and Line exist purely so that errors and reports can point at
// the offending row.
type RawRecord struct {
	Text string
	File string
	Line int
}

// NamedReadCloser is an io.ReadCloser which also knows the name of the
// thing being read (a file path, an S3 object key, etc).
type NamedReadCloser interface {
	io.ReadCloser
	Name() string
}

// RawSource hands out a reader for each piece of underlying data - each
// file in a directory, each object under an S3 prefix. NextReader returns
// io.EOF once all readers have been handed out.
type RawSource interface {
	NextReader() (NamedReadCloser, error)
}
