// internal/writer/types.go
package writer

import (
	"context"
	"fmt"

	"github.com/yug2601/plc/internal/payload"
	"github.com/yug2601/plc/internal/status"
)

// Writer publishes tick results into the remote document.
type Writer interface {
	// WriteDocument replaces the remote document wholesale.
	WriteDocument(ctx context.Context, doc payload.Document) error

	// WriteStatus changes only the status field.
	WriteStatus(ctx context.Context, code status.Code) error
}

// PublishError is any failure writing to the store.
// Callers log it; it is never retried within a tick.
type PublishError struct {
	Op     string // "set" or "update"
	Status status.Code
	Err    error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s (status=%s): %v", e.Op, e.Status, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
