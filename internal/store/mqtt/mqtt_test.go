// internal/store/mqtt/mqtt_test.go
package mqtt

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yug2601/plc/internal/store"
)

type fakeBroker struct {
	payloads [][]byte
	fail     error
}

func (f *fakeBroker) publish(p []byte) error {
	if f.fail != nil {
		return f.fail
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func (f *fakeBroker) last(t *testing.T) map[string]interface{} {
	t.Helper()
	require.NotEmpty(t, f.payloads)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(f.payloads[len(f.payloads)-1], &doc))
	return doc
}

func TestNew_RequiresBrokerAndTopic(t *testing.T) {
	_, err := New(Config{Topic: "t"})
	assert.Error(t, err)
	_, err = New(Config{Broker: "tcp://localhost:1883"})
	assert.Error(t, err)
}

func TestStore_UpdateBeforeSet(t *testing.T) {
	fb := &fakeBroker{}
	s := newStore("factory_data/oven_1", fb.publish, nil)

	err := s.Update(context.Background(), map[string]interface{}{"status": "OFFLINE"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, fb.payloads)
}

func TestStore_UpdateMergesIntoLastDocument(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBroker{}
	s := newStore("factory_data/oven_1", fb.publish, nil)

	require.NoError(t, s.Set(ctx, map[string]interface{}{"600": 1.5, "status": "ONLINE"}))
	require.NoError(t, s.Update(ctx, map[string]interface{}{"status": "OFFLINE"}))

	assert.Equal(t, map[string]interface{}{"600": 1.5, "status": "OFFLINE"}, fb.last(t))
	assert.Len(t, fb.payloads, 2)
}

func TestStore_FailedPublishKeepsPreviousDocument(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBroker{}
	s := newStore("t", fb.publish, nil)

	require.NoError(t, s.Set(ctx, map[string]interface{}{"600": 1.0, "status": "ONLINE"}))

	fb.fail = errors.New("not connected")
	assert.Error(t, s.Set(ctx, map[string]interface{}{"600": 2.0, "status": "ONLINE"}))

	fb.fail = nil
	require.NoError(t, s.Update(ctx, map[string]interface{}{"status": "ERROR"}))
	assert.Equal(t, map[string]interface{}{"600": 1.0, "status": "ERROR"}, fb.last(t))
}

func TestStore_CloseDisconnects(t *testing.T) {
	called := false
	s := newStore("t", (&fakeBroker{}).publish, func() { called = true })
	require.NoError(t, s.Close())
	assert.True(t, called)
}
