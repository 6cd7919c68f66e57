package mirdip

import (
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Ingester drives one pass over a Source: parse each raw record, fold it
// into the Mapper, then emit the deduplicated graph to the Sink.
type Ingester struct {
	// Strict aborts the run on the first bad row instead of collecting
	// it into the report.
	Strict bool

	Stats Statter
	Log   Logger

	src    Source
	parser *Parser
	mapper *Mapper
	sink   Sink
}

// NewIngester wires up the pipeline stages.
func NewIngester(src Source, parser *Parser, mapper *Mapper, sink Sink) *Ingester {
	return &Ingester{
		Stats:  NopStatter{},
		Log:    NopLogger{},
		src:    src,
		parser: parser,
		mapper: mapper,
		sink:   sink,
	}
}

// Run ingests until the source is exhausted, then emits and closes the
// sink. A failed run aborts the sink instead, discarding buffered output
// while still releasing the underlying resource. The returned Report is
// non-nil whenever ingestion got far enough to count anything, including
// alongside a strict-mode error. Source IO errors are fatal regardless
// of mode.
func (n *Ingester) Run() (*Report, error) {
	report := newReport(uuid.NewString())
	for {
		raw, err := n.src.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			n.abortSink()
			return report, errors.Wrap(err, "reading source")
		}
		rec, err := n.parser.Parse(raw)
		if err == nil {
			err = n.mapper.Add(rec)
		}
		if err != nil {
			re, ok := err.(*RowError)
			if !ok {
				// Not a per-row failure (e.g. the translator's backing
				// store broke); always fatal.
				n.abortSink()
				return report, err
			}
			if n.Strict {
				n.abortSink()
				return report, re
			}
			n.Stats.Count("rows-skipped", 1, 1)
			n.Log.Debugf("skipping row: %v", re)
			report.addRowError(re)
			continue
		}
		report.Rows++
		n.Stats.Count("rows", 1, 1)
	}

	report.Proteins = n.mapper.Proteins()
	report.Mirnas = n.mapper.Mirnas()
	report.Edges = n.mapper.Edges()
	report.Unmapped = len(n.mapper.Unmapped())
	n.Stats.Gauge("nodes", float64(report.Proteins+report.Mirnas), 1)
	n.Stats.Gauge("edges", float64(report.Edges), 1)

	if err := n.mapper.Emit(n.sink); err != nil {
		n.abortSink()
		return report, errors.Wrap(err, "emitting graph")
	}
	if err := n.sink.Close(); err != nil {
		return report, errors.Wrap(err, "closing sink")
	}
	return report, nil
}

// abortSink releases the sink without finalizing output, for failed
// runs. Sinks that don't distinguish the two are left untouched.
func (n *Ingester) abortSink() {
	a, ok := n.sink.(Aborter)
	if !ok {
		return
	}
	if err := a.Abort(); err != nil {
		n.Log.Printf("aborting sink: %v", err)
	}
}
