// internal/config/validate.go
package config

import (
	"fmt"
)

// maxReadQuantity is the largest even quantity a single FC3 request may carry.
const maxReadQuantity = 124

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	if cfg.Source.Host == "" {
		return fmt.Errorf("source.host (PLC_IP) is required")
	}
	if cfg.Source.Port < 1 || cfg.Source.Port > 65535 {
		return fmt.Errorf("source.port (PLC_PORT) %d out of range 1-65535", cfg.Source.Port)
	}
	if cfg.Source.TimeoutMs <= 0 {
		return fmt.Errorf("source.timeout_ms must be > 0, got %d", cfg.Source.TimeoutMs)
	}

	// ------------------------------------------------------------
	// BLOCK GEOMETRY
	// ------------------------------------------------------------

	b := cfg.Block

	// each engineering value consumes two registers
	if b.RegisterCount == 0 || b.RegisterCount%2 != 0 {
		return fmt.Errorf("block.register_count (REGISTER_COUNT) must be even and > 0, got %d", b.RegisterCount)
	}
	if b.RegisterCount > maxReadQuantity {
		return fmt.Errorf("block.register_count (REGISTER_COUNT) %d exceeds %d", b.RegisterCount, maxReadQuantity)
	}
	if int(b.RegisterBase)+int(b.RegisterCount) > 0x10000 {
		return fmt.Errorf(
			"block range %d+%d runs past the end of the register space",
			b.RegisterBase,
			b.RegisterCount,
		)
	}
	if b.UpperBound <= int(b.RegisterBase) {
		return fmt.Errorf(
			"block.upper_bound (UPPER_BOUND) %d must be above register_base %d",
			b.UpperBound,
			b.RegisterBase,
		)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.UploadRate <= 0 {
		return fmt.Errorf("poll.upload_rate (UPLOAD_RATE) must be > 0 seconds, got %d", cfg.Poll.UploadRate)
	}

	// ------------------------------------------------------------
	// HEALTH
	// ------------------------------------------------------------

	if cfg.Health.Port < 0 || cfg.Health.Port > 65535 {
		return fmt.Errorf("health.port (PORT) %d out of range 0-65535", cfg.Health.Port)
	}

	// ------------------------------------------------------------
	// STORE
	// ------------------------------------------------------------

	switch cfg.Store.Backend {
	case BackendFirestore:
		fs := cfg.Store.Firestore
		if fs.Collection == "" || fs.Document == "" {
			return fmt.Errorf("store.firestore: collection and document are required")
		}

	case BackendMQTT:
		m := cfg.Store.MQTT
		if m.Broker == "" {
			return fmt.Errorf("store.mqtt.broker (MQTT_BROKER) is required")
		}
		if m.Topic == "" {
			return fmt.Errorf("store.mqtt.topic (MQTT_TOPIC) is required")
		}
		if m.QoS < 0 || m.QoS > 2 {
			return fmt.Errorf("store.mqtt.qos must be 0, 1 or 2, got %d", m.QoS)
		}
		if m.TimeoutMs <= 0 {
			return fmt.Errorf("store.mqtt.timeout_ms must be > 0, got %d", m.TimeoutMs)
		}

	case BackendMemory:

	default:
		return fmt.Errorf(
			"store.backend (STORE_BACKEND) %q unknown; want %s, %s or %s",
			cfg.Store.Backend,
			BackendFirestore,
			BackendMQTT,
			BackendMemory,
		)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format (LOG_FORMAT) %q unknown; want json or console", cfg.Log.Format)
	}

	return nil
}
