// internal/writer/writer.go
package writer

import (
	"context"

	"github.com/pkg/errors"

	"github.com/yug2601/plc/internal/payload"
	"github.com/yug2601/plc/internal/status"
	"github.com/yug2601/plc/internal/store"
)

type docWriter struct {
	store store.Store
}

// New returns a Writer over one store document.
func New(s store.Store) Writer {
	return &docWriter{store: s}
}

func (w *docWriter) WriteDocument(ctx context.Context, doc payload.Document) error {
	if err := w.store.Set(ctx, doc.Fields()); err != nil {
		return &PublishError{Op: "set", Status: doc.Status, Err: err}
	}
	return nil
}

// WriteStatus sends a partial update. If the document does not exist yet
// (no successful tick has ever been published) it is created holding only
// the status field.
func (w *docWriter) WriteStatus(ctx context.Context, code status.Code) error {
	fields := status.Encode(code)

	err := w.store.Update(ctx, fields)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return &PublishError{Op: "update", Status: code, Err: err}
	}

	if err := w.store.Set(ctx, fields); err != nil {
		return &PublishError{Op: "set", Status: code, Err: err}
	}
	return nil
}
