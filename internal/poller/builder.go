// internal/poller/builder.go
package poller

import (
	cfg "github.com/yug2601/plc/internal/config"
	pmodbus "github.com/yug2601/plc/internal/poller/modbus"
)

// Build constructs a Poller and wires the Modbus client lifecycle.
// Nothing is dialed here: the first tick connects.
// The returned closer releases the connection on shutdown.
func Build(c cfg.Config) (*Poller, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Endpoint: c.Source.Endpoint(),
		UnitID:   c.Source.UnitID,
		Timeout:  c.Source.Timeout(),
	})
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Read: ReadBlock{
				Address:  c.Block.RegisterBase,
				Quantity: c.Block.RegisterCount,
			},
		},
		client,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
