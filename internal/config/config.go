// internal/config/config.go
package config

import (
	"fmt"
	"time"
)

type Config struct {
	Source SourceConfig `yaml:"source"`
	Block  BlockConfig  `yaml:"block"`
	Poll   PollConfig   `yaml:"poll"`
	Store  StoreConfig  `yaml:"store"`
	Health HealthConfig `yaml:"health"`
	Log    LogConfig    `yaml:"log"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Endpoint returns host:port for dialing.
func (s SourceConfig) Endpoint() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// ---- READ GEOMETRY ----

// BlockConfig is the alignment of the holding register block.
// The defaults start one register early so that the high word of
// logical address 600 lands at offset 0.
type BlockConfig struct {
	RegisterBase  uint16 `yaml:"register_base"`
	RegisterCount uint16 `yaml:"register_count"`
	UpperBound    int    `yaml:"upper_bound"`
}

// ---- POLL ----

type PollConfig struct {
	UploadRate int `yaml:"upload_rate"` // seconds between ticks
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.UploadRate) * time.Second
}

// ---- STORE ----

const (
	BackendFirestore = "firestore"
	BackendMQTT      = "mqtt"
	BackendMemory    = "memory"
)

type StoreConfig struct {
	Backend   string          `yaml:"backend"`
	Firestore FirestoreConfig `yaml:"firestore"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
}

type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"` // empty => detect from credentials
	Collection      string `yaml:"collection"`
	Document        string `yaml:"document"`
	CredentialsFile string `yaml:"credentials_file"` // used only if it exists
}

type MQTTConfig struct {
	Broker    string `yaml:"broker"`
	Topic     string `yaml:"topic"`
	ClientID  string `yaml:"client_id"`
	QoS       int    `yaml:"qos"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (m MQTTConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

// ---- HEALTH ----

type HealthConfig struct {
	Port int `yaml:"port"` // 0 disables the endpoint
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings the gateway runs with when nothing is configured.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Host:      "192.168.0.10",
			Port:      502,
			UnitID:    1,
			TimeoutMs: 5000,
		},
		Block: BlockConfig{
			RegisterBase:  599,
			RegisterCount: 44,
			UpperBound:    639,
		},
		Poll: PollConfig{
			UploadRate: 2,
		},
		Store: StoreConfig{
			Backend: BackendFirestore,
			Firestore: FirestoreConfig{
				Collection:      "factory_data",
				Document:        "oven_1",
				CredentialsFile: "serviceAccountKey.json",
			},
			MQTT: MQTTConfig{
				Topic:     "factory_data/oven_1",
				QoS:       1,
				TimeoutMs: 5000,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
