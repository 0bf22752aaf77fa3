// internal/writer/builder.go
package writer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	cfg "github.com/yug2601/plc/internal/config"
	"github.com/yug2601/plc/internal/store"
	"github.com/yug2601/plc/internal/store/firestore"
	"github.com/yug2601/plc/internal/store/memory"
	"github.com/yug2601/plc/internal/store/mqtt"
)

// BuildStore opens the configured backend.
// Assumes config has already passed validation.
func BuildStore(ctx context.Context, c cfg.StoreConfig, log *zap.Logger) (store.Store, error) {
	switch c.Backend {
	case cfg.BackendFirestore:
		s, err := firestore.New(ctx, firestore.Config{
			ProjectID:       c.Firestore.ProjectID,
			Collection:      c.Firestore.Collection,
			Document:        c.Firestore.Document,
			CredentialsFile: c.Firestore.CredentialsFile,
		}, log)
		if err != nil {
			return nil, err
		}
		return s, nil

	case cfg.BackendMQTT:
		s, err := mqtt.New(mqtt.Config{
			Broker:   c.MQTT.Broker,
			Topic:    c.MQTT.Topic,
			ClientID: c.MQTT.ClientID,
			QoS:      byte(c.MQTT.QoS),
			Timeout:  c.MQTT.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case cfg.BackendMemory:
		return memory.New(), nil

	default:
		return nil, errors.Errorf("writer: unknown store backend %q", c.Backend)
	}
}

// Describe names the remote document for startup logs.
func Describe(c cfg.StoreConfig) string {
	switch c.Backend {
	case cfg.BackendFirestore:
		return "firestore:" + c.Firestore.Collection + "/" + c.Firestore.Document
	case cfg.BackendMQTT:
		return "mqtt:" + c.MQTT.Broker + "/" + c.MQTT.Topic
	default:
		return c.Backend
	}
}
