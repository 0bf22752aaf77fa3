// internal/poller/modbus/client.go
package modbus

import (
	"io"
	"net"
	"time"

	gmodbus "github.com/goburrow/modbus"
	"github.com/pkg/errors"
)

// Client is the connection manager for one Modbus TCP slave.
// It owns the transport handle for the life of the process and
// reconnects lazily, at most once per call to EnsureConnected.
// Not safe for concurrent use; one tick at a time.
type Client struct {
	handler   *gmodbus.TCPClientHandler
	client    gmodbus.Client
	connected bool
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration // bounds connect and each read
}

// New creates a disconnected client. Nothing is dialed.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	h := gmodbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	return &Client{
		handler: h,
		client:  gmodbus.NewClient(h),
	}, nil
}

// Connected reports the client's own view of the link.
// A connected client may still fail on its next read.
func (c *Client) Connected() bool {
	return c.connected
}

// EnsureConnected dials only if the client is not marked connected.
// An existing connection is not probed.
func (c *Client) EnsureConnected() error {
	if c.connected {
		return nil
	}
	if err := c.handler.Connect(); err != nil {
		return &TransportError{Op: "connect", Endpoint: c.handler.Address, Err: err}
	}
	c.connected = true
	return nil
}

// ReadHoldingRegisters issues exactly one FC3 request.
// Errors are *TransportError or *ReadError.
func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	const op = "read holding registers"

	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, c.fault(op, err)
	}

	if len(raw) != 2*int(qty) {
		return nil, &ReadError{
			Op:  op,
			Err: errors.Errorf("short payload: got %d bytes, want %d", len(raw), 2*int(qty)),
		}
	}

	return unpackRegisters(raw), nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	c.connected = false
	return c.handler.Close()
}

// fault classifies a read failure.
//
//   - exception response: ReadError, link kept
//   - network failure: TransportError, link dropped
//   - anything else (framing, size mismatch): ReadError, link dropped
//     since the stream may be out of step with the device
func (c *Client) fault(op string, err error) error {
	var mbErr *gmodbus.ModbusError
	if errors.As(err, &mbErr) {
		return &ReadError{Op: op, Exception: mbErr.ExceptionCode, Err: err}
	}

	c.drop()

	if isTransport(err) {
		return &TransportError{Op: op, Endpoint: c.handler.Address, Err: err}
	}
	return &ReadError{Op: op, Err: err}
}

func (c *Client) drop() {
	c.connected = false
	_ = c.handler.Close()
}

func isTransport(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
