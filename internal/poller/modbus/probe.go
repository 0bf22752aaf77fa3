// internal/poller/modbus/probe.go
package modbus

import (
	"context"
	"net"
	"time"
)

// Probe opens and closes one plain TCP connection to endpoint.
// It is diagnostic only and speaks no Modbus.
func Probe(ctx context.Context, endpoint string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}

	conn, err := d.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		return &TransportError{Op: "probe", Endpoint: endpoint, Err: err}
	}
	return conn.Close()
}
