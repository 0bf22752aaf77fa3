// internal/config/normalize.go
package config

import (
	"os"
	"strings"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	// Broker client ids must be unique per connection; derive one
	// from the host name unless configured.
	if cfg.Store.Backend == BackendMQTT && cfg.Store.MQTT.ClientID == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "local"
		}
		cfg.Store.MQTT.ClientID = "plc-gateway-" + host
	}
}
