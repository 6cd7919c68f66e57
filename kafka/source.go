// Package kafka provides a mirdip.Source consuming raw dataset lines
// from a Kafka topic, for pipelines where the distribution files are
// replayed onto a topic by other tooling.
package kafka

import (
	"io"
	"io/ioutil"
	"log"

	"github.com/Shopify/sarama"
	cluster "github.com/bsm/sarama-cluster"
	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
)

// Source implements mirdip.Source over a consumer group. Each message
// value is one dataset line; the topic stands in for the file name and
// the message offset for the line number.
type Source struct {
	Hosts   []string
	Topics  []string
	Group   string
	MaxMsgs int

	numMsgs  int
	consumer *cluster.Consumer
}

// NewSource gets a new Source with default connection settings.
func NewSource() *Source {
	return &Source{
		Hosts:  []string{"localhost:9092"},
		Topics: []string{"mirdip"},
		Group:  "mirdip-adapter",
	}
}

// Record returns the next message as a raw dataset record.
func (s *Source) Record() (mirdip.RawRecord, error) {
	if s.MaxMsgs > 0 {
		s.numMsgs++
		if s.numMsgs > s.MaxMsgs {
			return mirdip.RawRecord{}, io.EOF
		}
	}
	msg, ok := <-s.consumer.Messages()
	if !ok {
		return mirdip.RawRecord{}, io.EOF
	}
	s.consumer.MarkOffset(msg, "") // mark message as processed
	return mirdip.RawRecord{
		Text: string(msg.Value),
		File: msg.Topic,
		Line: int(msg.Offset),
	}, nil
}

// Open initializes the consumer group.
func (s *Source) Open() error {
	sarama.Logger = log.New(ioutil.Discard, "", 0)
	config := cluster.NewConfig()
	config.Config.Version = sarama.V0_10_0_0
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	var err error
	s.consumer, err = cluster.NewConsumer(s.Hosts, s.Group, s.Topics, config)
	if err != nil {
		return errors.Wrap(err, "getting new consumer")
	}
	go func() {
		for err := range s.consumer.Errors() {
			log.Printf("kafka consumer error: %v", err)
		}
	}()
	return nil
}

// Close shuts down the consumer.
func (s *Source) Close() error {
	return errors.Wrap(s.consumer.Close(), "closing consumer")
}
