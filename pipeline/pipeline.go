// Package pipeline holds the configuration and wiring shared by all of
// the ingest entry points (file, s3, kafka): translator and cache setup,
// sink selection, and running the Ingester over a Source.
package pipeline

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
	"github.com/slobentanzer/mirdip-adapter/csvout"
	"github.com/slobentanzer/mirdip-adapter/neo4j"
	"github.com/slobentanzer/mirdip-adapter/termstat"
	"github.com/slobentanzer/mirdip-adapter/tsv"
)

// Config carries every option that isn't about where the raw data comes
// from. Fields map to command line flags through commandeer.
type Config struct {
	Columns     string `help:"Path to the README file listing dataset columns. Blank uses the four-column layout."`
	Mapping     string `help:"Two-column TSV file mapping gene symbols to UniProt accessions. Blank skips translation."`
	Cache       string `help:"Translator cache backend: bolt, leveldb, or none."`
	CachePath   string `help:"Path for the translator cache (a file for bolt, a directory for leveldb)."`
	ClearCache  bool   `help:"Drop cached symbol translations before running."`
	Strict      bool   `help:"Abort on the first malformed row instead of collecting a report."`
	ScorePolicy string `help:"Duplicate-edge score reconciliation: max, sum, or overwrite."`
	Limit       int    `help:"Read only the first N records; 0 reads everything."`
	SkipHeader  bool   `help:"Discard the first line of every input file."`

	Sink          string `help:"Graph output: neo4j or csv."`
	Neo4jURI      string `help:"Bolt URI of the Neo4j (or compatible) server."`
	Neo4jUser     string `help:"Neo4j user."`
	Neo4jPassword string `help:"Neo4j password."`
	OutDir        string `help:"Output directory for csv sink runs."`
	BatchSize     uint   `help:"Rows per batch for the neo4j sink (latency/throughput tradeoff)."`

	Stats bool `help:"Print periodic ingest stats to stderr."`
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		Cache:       "none",
		CachePath:   "mirdip-cache",
		ScorePolicy: "max",
		Sink:        "neo4j",
		Neo4jURI:    "bolt://localhost:7687",
		Neo4jUser:   "neo4j",
		OutDir:      "import",
		BatchSize:   1000,
	}
}

// Parser builds the record parser, reading the column layout from the
// configured README file when one is given.
func (c Config) Parser() (*mirdip.Parser, error) {
	if c.Columns == "" {
		return mirdip.NewParser(nil), nil
	}
	f, err := os.Open(c.Columns)
	if err != nil {
		return nil, errors.Wrap(err, "opening column listing")
	}
	defer f.Close()
	cols, err := tsv.ReadColumns(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading columns from %s", c.Columns)
	}
	return mirdip.NewParser(cols), nil
}

// Translator builds the symbol translator and its cache wrapper. The
// returned closer is non-nil when a persistent cache is in use.
func (c Config) Translator() (mirdip.Translator, io.Closer, error) {
	if c.Mapping == "" {
		return nil, nil, nil
	}
	base, err := mirdip.LoadMappingFile(c.Mapping)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading mapping")
	}
	switch c.Cache {
	case "", "none":
		return base, nil, nil
	case "bolt":
		bt, err := mirdip.NewBoltTranslator(c.CachePath, base)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening bolt cache")
		}
		if c.ClearCache {
			if err := bt.Clear(); err != nil {
				bt.Close()
				return nil, nil, errors.Wrap(err, "clearing bolt cache")
			}
		}
		return bt, bt, nil
	case "leveldb":
		lt, err := mirdip.NewLevelTranslator(c.CachePath, base)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening leveldb cache")
		}
		if c.ClearCache {
			if err := lt.Clear(); err != nil {
				lt.Close()
				return nil, nil, errors.Wrap(err, "clearing leveldb cache")
			}
		}
		return lt, lt, nil
	}
	return nil, nil, errors.Errorf("unknown cache backend %q (want bolt, leveldb, or none)", c.Cache)
}

// NewSink builds the configured sink.
func (c Config) NewSink() (mirdip.Sink, error) {
	switch c.Sink {
	case "neo4j":
		return neo4j.NewSink(c.Neo4jURI, c.Neo4jUser, c.Neo4jPassword,
			neo4j.OptSinkBatchSize(int(c.BatchSize)))
	case "csv":
		return csvout.NewSink(c.OutDir)
	}
	return nil, errors.Errorf("unknown sink %q (want neo4j or csv)", c.Sink)
}

// Run assembles the pipeline around src and runs it to completion,
// logging the end-of-run report.
func (c Config) Run(src mirdip.Source) error {
	parser, err := c.Parser()
	if err != nil {
		return err
	}
	policy, err := mirdip.ParseScorePolicy(c.ScorePolicy)
	if err != nil {
		return err
	}
	translator, cacheCloser, err := c.Translator()
	if err != nil {
		return err
	}
	if cacheCloser != nil {
		defer cacheCloser.Close()
	}
	sink, err := c.NewSink()
	if err != nil {
		return errors.Wrap(err, "setting up sink")
	}

	mapper := mirdip.NewMapper(policy)
	mapper.Translator = translator
	ingester := mirdip.NewIngester(src, parser, mapper, sink)
	ingester.Strict = c.Strict
	ingester.Log = mirdip.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
	if c.Stats {
		ingester.Stats = termstat.NewCollector(os.Stderr)
	}

	report, err := ingester.Run()
	if report != nil {
		log.Println(report)
	}
	return err
}
