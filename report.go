package mirdip

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// maxSampledErrors bounds how many row errors a Report holds verbatim;
// beyond that only the per-kind counts keep growing.
const maxSampledErrors = 25

// Report summarizes one ingest run: how many rows made it through, how
// many were skipped and why, and what the mapper produced.
type Report struct {
	// RunID identifies the run in logs and sink output.
	RunID string

	Rows     int
	Skipped  int
	Proteins int
	Mirnas   int
	Edges    int
	Unmapped int

	// Kinds counts skipped rows by failure kind (the sentinel message).
	Kinds map[string]int
	// Sample holds the first few row errors verbatim.
	Sample []*RowError
}

func newReport(runID string) *Report {
	return &Report{RunID: runID, Kinds: make(map[string]int)}
}

func (r *Report) addRowError(re *RowError) {
	r.Skipped++
	r.Kinds[errors.Cause(re.Err).Error()]++
	if len(r.Sample) < maxSampledErrors {
		r.Sample = append(r.Sample, re)
	}
}

// OK reports whether the run completed without skipping any rows.
func (r *Report) OK() bool { return r.Skipped == 0 }

// String renders a human readable end-of-run summary.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %d rows -> %d proteins, %d miRNAs, %d edges",
		r.RunID, r.Rows, r.Proteins, r.Mirnas, r.Edges)
	if r.Unmapped > 0 {
		fmt.Fprintf(&b, ", %d unmapped gene symbols", r.Unmapped)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "\nskipped %d rows:", r.Skipped)
		for kind, n := range r.Kinds {
			fmt.Fprintf(&b, " %s=%d", kind, n)
		}
		for _, re := range r.Sample {
			fmt.Fprintf(&b, "\n  %v", re)
		}
		if r.Skipped > len(r.Sample) {
			fmt.Fprintf(&b, "\n  ... and %d more", r.Skipped-len(r.Sample))
		}
	}
	return b.String()
}
