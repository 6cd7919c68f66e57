package s3

import (
	"github.com/pkg/errors"
	"github.com/slobentanzer/mirdip-adapter/pipeline"
	"github.com/slobentanzer/mirdip-adapter/tsv"
)

// Main is the configuration for ingesting a dataset hosted on S3.
type Main struct {
	Bucket string `help:"S3 bucket holding the dataset objects."`
	Prefix string `help:"Only objects matching this prefix are read."`
	Region string `help:"AWS region."`

	pipeline.Config
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Bucket: "mirdip-data",
		Region: "us-east-1",
		Config: pipeline.NewConfig(),
	}
}

// Run runs the ingester.
func (m *Main) Run() error {
	rs, err := NewRawSource(m.Region, m.Bucket, m.Prefix)
	if err != nil {
		return errors.Wrap(err, "getting s3 source")
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
