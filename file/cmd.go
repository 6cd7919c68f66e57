package file

import (
	"github.com/pkg/errors"
	"github.com/slobentanzer/mirdip-adapter/pipeline"
	"github.com/slobentanzer/mirdip-adapter/tsv"
)

// Main is the configuration for ingesting a dataset from a local file or
// directory.
type Main struct {
	Path string `help:"File or directory containing the dataset."`

	pipeline.Config
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Path:   "data/mirDIP_Bidirectional_search_v_5_2",
		Config: pipeline.NewConfig(),
	}
}

// Run runs the ingester.
func (m *Main) Run() error {
	rs, err := NewRawSource(m.Path)
	if err != nil {
		return errors.Wrap(err, "getting raw source")
	}
	var opts []tsv.SrcOption
	if m.Limit > 0 {
		opts = append(opts, tsv.OptSrcLimit(m.Limit))
	}
	if m.SkipHeader {
		opts = append(opts, tsv.OptSrcSkipHeader())
	}
	src := tsv.NewSource(rs, opts...)
	defer src.Close()
	return m.Config.Run(src)
}
