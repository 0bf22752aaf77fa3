// internal/poller/types.go
package poller

import "time"

// ReadBlock describes the one holding-register read issued per tick.
// Geometry only: no semantics.
type ReadBlock struct {
	Address  uint16
	Quantity uint16
}

// Outcome tags how a poll cycle ended.
type Outcome uint8

const (
	// OutcomeOK: registers were read and are usable.
	OutcomeOK Outcome = iota
	// OutcomeTransportFault: the controller could not be reached.
	OutcomeTransportFault
	// OutcomeProtocolFault: the controller answered with an error or unusable data.
	OutcomeProtocolFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTransportFault:
		return "transport_fault"
	case OutcomeProtocolFault:
		return "protocol_fault"
	default:
		return "unknown"
	}
}

// Result is a snapshot produced by one poll cycle.
type Result struct {
	At      time.Time // start of the poll cycle
	Outcome Outcome

	// Registers is set only when Outcome is OutcomeOK.
	Registers []uint16

	Err error // non-nil unless Outcome is OutcomeOK
}
