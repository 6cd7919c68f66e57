// Package mirdip turns the mirDIP "Bidirectional search" dataset (tab
// separated miRNA-target interaction records) into graph nodes and edges
// suitable for loading into Neo4j or any other property graph store.
//
// The import is structured as a small pipeline, and each stage has an
// interface plus one or more implementations in this module:
//
// 1. Source
//
//    A mirdip.Source produces raw dataset lines one at a time, tagged with
//    the file and line number they came from so that errors can point back
//    at the offending row. The tsv subpackage scans delimited text out of
//    any RawSource; RawSource implementations exist for local files and
//    directories (file), S3 buckets (s3), and Kafka topics (kafka).
//
// 2. Parser
//
//    The Parser splits a raw line on the dataset delimiter, checks the
//    field count against the configured column layout, and validates the
//    typed fields (rank and score must be finite non-negative numbers).
//    Bad rows produce a RowError wrapping one of the exported sentinel
//    errors, so callers can distinguish a malformed row from a bad score
//    or an invalid accession.
//
// 3. Mapper
//
//    The Mapper is where records become graph structure. It normalizes
//    accessions, optionally translates gene symbols to UniProt through a
//    Translator, deduplicates nodes by identity, and keeps at most one
//    interaction edge per (protein, miRNA) pair, unioning evidence sources
//    and reconciling scores according to a configurable policy.
//
// 4. Sink
//
//    A Sink persists the mapped graph. The neo4j subpackage writes
//    batched MERGE statements through the official driver; the csvout
//    subpackage produces neo4j-admin bulk import files instead. The
//    Mapper always hands nodes to the sink before any edge that
//    references them.
//
// The Ingester drives a single streaming pass over a Source and collects a
// Report of everything that was skipped along the way. In strict mode the
// first bad row aborts the run instead.
package mirdip
