// Package neo4j implements mirdip.Sink against a Neo4j (or bolt
// compatible, e.g. Memgraph) server using the official driver. Writes go
// out as batched UNWIND+MERGE statements, so re-importing the same
// dataset merges into the existing graph instead of duplicating it.
package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
)

// Sink buffers node and edge rows per label and flushes a batch whenever
// a buffer fills. Edges are buffered until Close so that every node is in
// the database before the first relationship MATCH runs.
type Sink struct {
	driver neo4j.DriverWithContext
	ctx    context.Context

	batchSize int
	nodes     map[string][]map[string]interface{}
	nodeOrder []string
	edges     map[string][]map[string]interface{}
	edgeOrder []string
}

// SinkOption is a functional option for the neo4j Sink.
type SinkOption func(s *Sink)

// OptSinkBatchSize sets the number of rows per UNWIND batch.
func OptSinkBatchSize(n int) SinkOption {
	return func(s *Sink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// OptSinkContext sets the context used for all driver calls.
func OptSinkContext(ctx context.Context) SinkOption {
	return func(s *Sink) {
		s.ctx = ctx
	}
}

// NewSink connects to uri, verifies connectivity, and ensures an id
// index per node label.
func NewSink(uri, username, password string, opts ...SinkOption) (*Sink, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "creating driver")
	}
	s := &Sink{
		driver:    driver,
		ctx:       context.Background(),
		batchSize: 1000,
		nodes:     make(map[string][]map[string]interface{}),
		edges:     make(map[string][]map[string]interface{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := driver.VerifyConnectivity(s.ctx); err != nil {
		driver.Close(s.ctx)
		return nil, errors.Wrap(err, "verifying connectivity")
	}
	return s, nil
}

// WriteNode implements mirdip.Sink.
func (s *Sink) WriteNode(label, id string, props map[string]interface{}) error {
	if _, ok := s.nodes[label]; !ok {
		s.nodeOrder = append(s.nodeOrder, label)
		if err := s.ensureIndex(label); err != nil {
			return err
		}
	}
	s.nodes[label] = append(s.nodes[label], map[string]interface{}{
		"id":    id,
		"props": props,
	})
	if len(s.nodes[label]) >= s.batchSize {
		return s.flushNodes(label)
	}
	return nil
}

// WriteEdge implements mirdip.Sink. Edges whose endpoints are missing
// from the database match nothing and are dropped silently, which is the
// bulk-import behavior of skipping bad relationships.
func (s *Sink) WriteEdge(label, start, end string, props map[string]interface{}) error {
	if _, ok := s.edges[label]; !ok {
		s.edgeOrder = append(s.edgeOrder, label)
	}
	s.edges[label] = append(s.edges[label], map[string]interface{}{
		"start": start,
		"end":   end,
		"props": props,
	})
	return nil
}

// Abort implements mirdip.Aborter: buffered rows are dropped and the
// driver connection closed without writing anything further.
func (s *Sink) Abort() error {
	s.nodes = make(map[string][]map[string]interface{})
	s.edges = make(map[string][]map[string]interface{})
	s.nodeOrder, s.edgeOrder = nil, nil
	if s.driver == nil {
		return nil
	}
	return errors.Wrap(s.driver.Close(s.ctx), "closing driver")
}

// Close flushes all buffered nodes, then all buffered edges, then closes
// the driver.
func (s *Sink) Close() error {
	for _, label := range s.nodeOrder {
		if err := s.flushNodes(label); err != nil {
			s.driver.Close(s.ctx)
			return err
		}
	}
	for _, label := range s.edgeOrder {
		if err := s.flushEdges(label); err != nil {
			s.driver.Close(s.ctx)
			return err
		}
	}
	return errors.Wrap(s.driver.Close(s.ctx), "closing driver")
}

func (s *Sink) flushNodes(label string) error {
	rows := s.nodes[label]
	if len(rows) == 0 {
		return nil
	}
	s.nodes[label] = nil
	return s.run(nodeQuery(label), map[string]interface{}{"rows": rows})
}

func (s *Sink) flushEdges(label string) error {
	rows := s.edges[label]
	if len(rows) == 0 {
		return nil
	}
	s.edges[label] = nil
	for start := 0; start < len(rows); start += s.batchSize {
		stop := start + s.batchSize
		if stop > len(rows) {
			stop = len(rows)
		}
		if err := s.run(edgeQuery(label), map[string]interface{}{"rows": rows[start:stop]}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sink) ensureIndex(label string) error {
	query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS FOR (n:%s) ON (n.id)", escapeLabel(label))
	return errors.Wrapf(s.run(query, nil), "creating index on %s", label)
}

func (s *Sink) run(query string, params map[string]interface{}) error {
	_, err := neo4j.ExecuteQuery(s.ctx, s.driver, query, params, neo4j.EagerResultTransformer)
	return errors.Wrapf(err, "executing %q", query)
}

func nodeQuery(label string) string {
	return fmt.Sprintf(
		"UNWIND $rows AS row MERGE (n:%s {id: row.id}) SET n += row.props",
		escapeLabel(label))
}

func edgeQuery(label string) string {
	return fmt.Sprintf(
		"UNWIND $rows AS row MATCH (a {id: row.start}) MATCH (b {id: row.end}) MERGE (a)-[r:%s]->(b) SET r += row.props",
		escapeLabel(label))
}

// escapeLabel backtick-quotes a label so it can be spliced into Cypher
// (labels can't be query parameters).
func escapeLabel(label string) string {
	return "`" + strings.ReplaceAll(label, "`", "``") + "`"
}
