// internal/poller/poller.go
package poller

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNoRegisters is reported when a read succeeds but carries no data.
var ErrNoRegisters = errors.New("poller: read returned no registers")

// Client abstracts the connection manager operations needed by the poller.
type Client interface {
	EnsureConnected() error
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Read ReadBlock
}

// Poller performs poll cycles. It owns no timing; the scheduler does.
type Poller struct {
	cfg    Config
	client Client
	now    func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Read.Quantity == 0 {
		return nil, errors.New("poller: read quantity must be > 0")
	}
	return &Poller{cfg: cfg, client: client, now: time.Now}, nil
}

// PollOnce performs exactly one poll cycle: ensure the link, then one read.
// There is no retry; a failed cycle is reported and the next tick tries again.
func (p *Poller) PollOnce() Result {
	res := Result{At: p.now()}

	if err := p.client.EnsureConnected(); err != nil {
		res.Outcome = OutcomeTransportFault
		res.Err = err
		return res
	}

	regs, err := p.client.ReadHoldingRegisters(p.cfg.Read.Address, p.cfg.Read.Quantity)
	if err != nil {
		res.Outcome = Classify(err)
		res.Err = err
		return res
	}
	if len(regs) == 0 {
		res.Outcome = OutcomeProtocolFault
		res.Err = ErrNoRegisters
		return res
	}

	res.Outcome = OutcomeOK
	res.Registers = regs
	return res
}

// protocolFault is implemented by errors that know whether the
// controller itself answered.
type protocolFault interface{ ProtocolFault() bool }

// Classify maps a read error to an outcome without assuming concrete types.
// Errors that do not say otherwise are treated as transport faults.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var pf protocolFault
	if errors.As(err, &pf) && pf.ProtocolFault() {
		return OutcomeProtocolFault
	}
	return OutcomeTransportFault
}
