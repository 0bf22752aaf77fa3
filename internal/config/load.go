// internal/config/load.go
package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"source.host":                      "PLC_IP",
	"source.port":                      "PLC_PORT",
	"source.unit_id":                   "UNIT_ID",
	"source.timeout_ms":                "PLC_TIMEOUT_MS",
	"block.register_base":              "REGISTER_ADDRESS",
	"block.register_count":             "REGISTER_COUNT",
	"block.upper_bound":                "UPPER_BOUND",
	"poll.upload_rate":                 "UPLOAD_RATE",
	"health.port":                      "PORT",
	"store.backend":                    "STORE_BACKEND",
	"store.firestore.project_id":       "FIRESTORE_PROJECT_ID",
	"store.firestore.collection":       "FIRESTORE_COLLECTION",
	"store.firestore.document":         "FIRESTORE_DOCUMENT",
	"store.firestore.credentials_file": "FIRESTORE_CREDENTIALS_FILE",
	"store.mqtt.broker":                "MQTT_BROKER",
	"store.mqtt.topic":                 "MQTT_TOPIC",
	"store.mqtt.client_id":             "MQTT_CLIENT_ID",
	"store.mqtt.qos":                   "MQTT_QOS",
	"store.mqtt.timeout_ms":            "MQTT_TIMEOUT_MS",
	"log.level":                        "LOG_LEVEL",
	"log.format":                       "LOG_FORMAT",
}

// Load builds the configuration in three layers:
// defaults, then the YAML file at path (optional, "" skips it),
// then environment variables.
// It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config: read file")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "config: bind %s", env)
		}
	}

	var convErr error
	fail := func(err error) {
		if convErr == nil {
			convErr = err
		}
	}
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	ranged := func(key string, lo, hi int) (int, bool) {
		if !v.IsSet(key) {
			return 0, false
		}
		n, err := toInt(v, key)
		if err != nil {
			fail(err)
			return 0, false
		}
		if n < lo || n > hi {
			fail(errors.Errorf("config: %s=%d out of range [%d, %d]", envBindings[key], n, lo, hi))
			return 0, false
		}
		return n, true
	}
	num := func(key string, dst *int) {
		if n, ok := ranged(key, math.MinInt32, math.MaxInt32); ok {
			*dst = n
		}
	}
	u16 := func(key string, dst *uint16) {
		if n, ok := ranged(key, 0, math.MaxUint16); ok {
			*dst = uint16(n)
		}
	}

	str("source.host", &cfg.Source.Host)
	num("source.port", &cfg.Source.Port)
	num("source.timeout_ms", &cfg.Source.TimeoutMs)
	if n, ok := ranged("source.unit_id", 0, math.MaxUint8); ok {
		cfg.Source.UnitID = uint8(n)
	}

	u16("block.register_base", &cfg.Block.RegisterBase)
	u16("block.register_count", &cfg.Block.RegisterCount)
	num("block.upper_bound", &cfg.Block.UpperBound)

	num("poll.upload_rate", &cfg.Poll.UploadRate)
	num("health.port", &cfg.Health.Port)

	str("store.backend", &cfg.Store.Backend)
	str("store.firestore.project_id", &cfg.Store.Firestore.ProjectID)
	str("store.firestore.collection", &cfg.Store.Firestore.Collection)
	str("store.firestore.document", &cfg.Store.Firestore.Document)
	str("store.firestore.credentials_file", &cfg.Store.Firestore.CredentialsFile)
	str("store.mqtt.broker", &cfg.Store.MQTT.Broker)
	str("store.mqtt.topic", &cfg.Store.MQTT.Topic)
	str("store.mqtt.client_id", &cfg.Store.MQTT.ClientID)
	num("store.mqtt.qos", &cfg.Store.MQTT.QoS)
	num("store.mqtt.timeout_ms", &cfg.Store.MQTT.TimeoutMs)

	str("log.level", &cfg.Log.Level)
	str("log.format", &cfg.Log.Format)

	return convErr
}

// toInt is strict: viper's GetInt maps garbage to 0, which would
// silently turn UPLOAD_RATE=abc into a busy loop.
func toInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("config: %s=%q is not an integer", envBindings[key], raw)
	}
	return n, nil
}
