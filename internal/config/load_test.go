// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every bound variable; viper treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultsWithoutFileOrEnv(t *testing.T) {
	clearEnv(t)

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "192.168.0.10:502", c.Source.Endpoint())
	assert.Equal(t, 5*time.Second, c.Source.Timeout())
	assert.Equal(t, uint16(599), c.Block.RegisterBase)
	assert.Equal(t, uint16(44), c.Block.RegisterCount)
	assert.Equal(t, 639, c.Block.UpperBound)
	assert.Equal(t, 2*time.Second, c.Poll.Interval())
	assert.Equal(t, BackendFirestore, c.Store.Backend)
	assert.Equal(t, "factory_data", c.Store.Firestore.Collection)
	assert.Equal(t, "oven_1", c.Store.Firestore.Document)
	assert.Equal(t, 0, c.Health.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLC_IP", "10.0.0.5")
	t.Setenv("PLC_PORT", "1502")
	t.Setenv("UPLOAD_RATE", "5")
	t.Setenv("UNIT_ID", "7")
	t.Setenv("REGISTER_ADDRESS", "99")
	t.Setenv("REGISTER_COUNT", "10")
	t.Setenv("UPPER_BOUND", "108")
	t.Setenv("PORT", "10000")
	t.Setenv("STORE_BACKEND", "mqtt")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:1502", c.Source.Endpoint())
	assert.Equal(t, 5*time.Second, c.Poll.Interval())
	assert.Equal(t, uint8(7), c.Source.UnitID)
	assert.Equal(t, uint16(99), c.Block.RegisterBase)
	assert.Equal(t, uint16(10), c.Block.RegisterCount)
	assert.Equal(t, 108, c.Block.UpperBound)
	assert.Equal(t, 10000, c.Health.Port)
	assert.Equal(t, BackendMQTT, c.Store.Backend)
	assert.Equal(t, "tcp://broker:1883", c.Store.MQTT.Broker)
	require.NoError(t, Validate(c))
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	body := []byte(`
source:
  host: plc.local
  port: 5020
poll:
  upload_rate: 10
store:
  backend: memory
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	clearEnv(t)
	t.Setenv("UPLOAD_RATE", "3")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "plc.local:5020", c.Source.Endpoint())
	assert.Equal(t, BackendMemory, c.Store.Backend)
	assert.Equal(t, 3, c.Poll.UploadRate, "env wins over file")
	assert.Equal(t, uint16(44), c.Block.RegisterCount, "defaults survive partial file")
}

func TestLoad_BadEnvInteger(t *testing.T) {
	t.Setenv("UPLOAD_RATE", "fast")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPLOAD_RATE")
}

func TestLoad_UnitIDOutOfRange(t *testing.T) {
	t.Setenv("UNIT_ID", "300")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
