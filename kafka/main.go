package kafka

import (
	"github.com/pkg/errors"
	"github.com/slobentanzer/mirdip-adapter/pipeline"
)

// Main is the configuration for ingesting dataset lines from Kafka.
type Main struct {
	Hosts  []string `help:"Comma separated list of Kafka brokers."`
	Topics []string `help:"Topics carrying dataset lines."`
	Group  string   `help:"Consumer group name."`

	pipeline.Config
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	src := NewSource()
	return &Main{
		Hosts:  src.Hosts,
		Topics: src.Topics,
		Group:  src.Group,
		Config: pipeline.NewConfig(),
	}
}

// Run runs the ingester. Without a record limit the consumer blocks on
// the topic indefinitely, so batch imports should set one.
func (m *Main) Run() error {
	src := NewSource()
	src.Hosts = m.Hosts
	src.Topics = m.Topics
	src.Group = m.Group
	src.MaxMsgs = m.Limit
	if err := src.Open(); err != nil {
		return errors.Wrap(err, "opening kafka source")
	}
	defer src.Close()
	return m.Config.Run(src)
}
