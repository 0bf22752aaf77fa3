// internal/store/mqtt/mqtt.go

// Package mqtt stores the document as a retained JSON message on one topic.
// Subscribers always see the latest full document; partial updates are
// merged locally into the last published document and republished.
package mqtt

import (
	"context"
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/yug2601/plc/internal/store"
)

type Config struct {
	Broker   string // tcp://host:1883
	Topic    string
	ClientID string
	QoS      byte
	Timeout  time.Duration // connect and per-publish wait
}

// Store publishes the document to the broker.
// Not safe for concurrent use.
type Store struct {
	topic string

	publish    func(payload []byte) error
	disconnect func()

	// last is the document as last accepted by the broker; nil until the first Set
	last map[string]interface{}
}

// New connects to the broker. The paho client reconnects on its own
// after the first successful connect.
func New(cfg Config) (*Store, error) {
	if cfg.Broker == "" || cfg.Topic == "" {
		return nil, errors.New("mqtt store: broker and topic required")
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true)

	cli := paho.NewClient(opts)

	tok := cli.Connect()
	if !tok.WaitTimeout(cfg.Timeout) {
		return nil, errors.Errorf("mqtt store: connect to %s timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, errors.Wrapf(err, "mqtt store: connect to %s", cfg.Broker)
	}

	publish := func(payload []byte) error {
		tok := cli.Publish(cfg.Topic, cfg.QoS, true, payload)
		if !tok.WaitTimeout(cfg.Timeout) {
			return errors.Errorf("mqtt store: publish to %s timed out", cfg.Topic)
		}
		return tok.Error()
	}

	return newStore(cfg.Topic, publish, func() { cli.Disconnect(250) }), nil
}

func newStore(topic string, publish func([]byte) error, disconnect func()) *Store {
	return &Store{
		topic:      topic,
		publish:    publish,
		disconnect: disconnect,
	}
}

func (s *Store) Set(_ context.Context, fields map[string]interface{}) error {
	doc := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	return s.put(doc)
}

// Update needs a document published by this process to merge into.
// Retained messages from earlier runs are not read back.
func (s *Store) Update(_ context.Context, fields map[string]interface{}) error {
	if s.last == nil {
		return store.ErrNotFound
	}

	doc := make(map[string]interface{}, len(s.last)+len(fields))
	for k, v := range s.last {
		doc[k] = v
	}
	for k, v := range fields {
		doc[k] = v
	}
	return s.put(doc)
}

func (s *Store) put(doc map[string]interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "mqtt store: encode document")
	}
	if err := s.publish(payload); err != nil {
		return errors.Wrapf(err, "mqtt store: publish %s", s.topic)
	}
	s.last = doc
	return nil
}

func (s *Store) Close() error {
	if s.disconnect != nil {
		s.disconnect()
	}
	return nil
}
