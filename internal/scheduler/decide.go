// internal/scheduler/decide.go
package scheduler

import (
	"time"

	"github.com/yug2601/plc/internal/payload"
	"github.com/yug2601/plc/internal/poller"
	"github.com/yug2601/plc/internal/status"
)

// Decision is what one tick publishes.
type Decision struct {
	Outcome poller.Outcome
	Status  status.Code

	// Document is set only for OutcomeOK: it replaces the remote document.
	// Otherwise only Status is published.
	Document *payload.Document

	Err error // poll error, nil for OutcomeOK
}

// Decide maps a poll result to a publish action. First match wins:
//
//	transport fault -> OFFLINE, partial update
//	protocol fault  -> ERROR, partial update
//	ok              -> ONLINE, full document
//
// at is the assembly time stamped into the document.
// Pure: no IO, no clock.
func Decide(res poller.Result, g Geometry, at time.Time) Decision {
	switch res.Outcome {
	case poller.OutcomeOK:
		values := payload.Assemble(res.Registers, g.RegisterBase, g.UpperBound)
		doc := payload.NewDocument(values, status.Online, at)
		return Decision{Outcome: res.Outcome, Status: status.Online, Document: &doc}

	case poller.OutcomeProtocolFault:
		return Decision{Outcome: res.Outcome, Status: status.Error, Err: res.Err}

	default:
		return Decision{Outcome: poller.OutcomeTransportFault, Status: status.Offline, Err: res.Err}
	}
}
