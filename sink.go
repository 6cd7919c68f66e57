package mirdip

// Sink is where mapped nodes and edges end up. The neo4j and csvout
// subpackages implement it against a live database and neo4j-admin bulk
// import files respectively; mock.Sink records calls for tests.
//
// Callers must write both endpoints of an edge before (or in the same
// batch as) the edge itself; Mapper.Emit guarantees this. Close flushes
// any buffered work and releases the underlying resource.
type Sink interface {
	WriteNode(label, id string, props map[string]interface{}) error
	WriteEdge(label, start, end string, props map[string]interface{}) error
	Close() error
}

// Aborter is implemented by sinks that can discard buffered work and
// release their underlying resource without finalizing any output. The
// Ingester aborts the sink when a run fails, so a strict-mode failure
// closes the database connection but never produces a partial graph.
type Aborter interface {
	Abort() error
}
