// internal/poller/modbus/errors.go
package modbus

import "fmt"

// TransportError means the controller could not be reached:
// dial failure, timeout, reset, EOF.
type TransportError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("modbus %s %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolFault reports false: nothing was heard from the controller.
func (e *TransportError) ProtocolFault() bool { return false }

// ReadError means the controller answered, but with an exception
// response or a payload that cannot be used.
type ReadError struct {
	Op string

	// Exception is the Modbus exception code, 0 if the response was malformed.
	Exception byte

	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("modbus %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ProtocolFault reports true.
func (e *ReadError) ProtocolFault() bool { return true }

// Code returns the raw exception code for logging.
func (e *ReadError) Code() uint16 { return uint16(e.Exception) }
