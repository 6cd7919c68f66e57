// Package mock holds test doubles for the sink and stats interfaces.
package mock

import "time"

// Call records one sink invocation in order.
type Call struct {
	Kind  string // "node" or "edge"
	Label string
	ID    string
	Start string
	End   string
	Props map[string]interface{}
}

// Sink is a mirdip.Sink which records every call. Not threadsafe.
type Sink struct {
	Calls   []Call
	Closed  bool
	Aborted bool

	// NodeErr/EdgeErr, when set, are returned by the corresponding
	// write method.
	NodeErr error
	EdgeErr error
}

// WriteNode implements WriteNode.
func (s *Sink) WriteNode(label, id string, props map[string]interface{}) error {
	if s.NodeErr != nil {
		return s.NodeErr
	}
	s.Calls = append(s.Calls, Call{Kind: "node", Label: label, ID: id, Props: props})
	return nil
}

// WriteEdge implements WriteEdge.
func (s *Sink) WriteEdge(label, start, end string, props map[string]interface{}) error {
	if s.EdgeErr != nil {
		return s.EdgeErr
	}
	s.Calls = append(s.Calls, Call{Kind: "edge", Label: label, Start: start, End: end, Props: props})
	return nil
}

// Close implements Close.
func (s *Sink) Close() error {
	s.Closed = true
	return nil
}

// Abort implements Abort.
func (s *Sink) Abort() error {
	s.Aborted = true
	return nil
}

// Nodes returns the recorded node calls in order.
func (s *Sink) Nodes() []Call { return s.byKind("node") }

// Edges returns the recorded edge calls in order.
func (s *Sink) Edges() []Call { return s.byKind("edge") }

func (s *Sink) byKind(kind string) []Call {
	var out []Call
	for _, c := range s.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// RecordingStatter is used for testing. Not threadsafe.
type RecordingStatter struct {
	Counts map[string]int64
}

// Count implements Count.
func (r *RecordingStatter) Count(name string, value int64, rate float64, tags ...string) {
	if r.Counts == nil {
		r.Counts = make(map[string]int64)
	}
	r.Counts[name] += value
}

// Gauge implements Gauge.
func (r *RecordingStatter) Gauge(name string, value float64, rate float64, tags ...string) {}

// Timing implements Timing.
func (r *RecordingStatter) Timing(name string, value time.Duration, rate float64, tags ...string) {}
