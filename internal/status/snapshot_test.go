// internal/status/snapshot_test.go
package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartsUnknown(t *testing.T) {
	var tr Tracker
	assert.Equal(t, Unknown, tr.Snapshot().Code)
	assert.Equal(t, "UNKNOWN", tr.Snapshot().Code.String())
}

func TestTracker_TransitionsAndFaultCounter(t *testing.T) {
	var tr Tracker
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	prev, changed := tr.Observe(Offline, t0)
	require.True(t, changed)
	assert.Equal(t, Unknown, prev)

	_, changed = tr.Observe(Offline, t0.Add(time.Second))
	assert.False(t, changed)
	assert.Equal(t, 2, tr.Snapshot().ConsecutiveFaults)
	assert.Equal(t, t0, tr.Snapshot().Since)

	prev, changed = tr.Observe(Error, t0.Add(2*time.Second))
	require.True(t, changed)
	assert.Equal(t, Offline, prev)
	assert.Equal(t, 3, tr.Snapshot().ConsecutiveFaults)

	prev, changed = tr.Observe(Online, t0.Add(3*time.Second))
	require.True(t, changed)
	assert.Equal(t, Error, prev)

	snap := tr.Snapshot()
	assert.Equal(t, Online, snap.Code)
	assert.Equal(t, 0, snap.ConsecutiveFaults)
	assert.Equal(t, t0.Add(3*time.Second), snap.Since)
}

func TestEncode_StatusOnly(t *testing.T) {
	fields := Encode(Offline)
	assert.Equal(t, map[string]interface{}{"status": "OFFLINE"}, fields)
}
