package requests

import (
	"context"
)

const (
	publishDiagnosticsNotification = "textDocument/publishDiagnostics"
)

func publishDiagnostics(ctx context.Context, conn Conn, params *PublishDiagnosticsParams) {
	conn.Notify(ctx, publishDiagnosticsNotification, params)
}

// computeAndPublish runs one diagnostics aggregation pass for uri and
// pushes the outcome to the client.  It is called on its own goroutine;
// the store snapshots state under its own lock and re-checks the
// document version afterwards, so results computed against a superseded
// version are dropped here instead of overwriting newer ones.
func (h *Handler) computeAndPublish(uri string) {
	res, err := h.store.ComputeDiagnostics(uri)
	if res == nil {
		if err != nil {
			h.log.Verbosef("Diagnostics skipped: %s\n", err.Error())
		}
		return
	}

	if res.Stale {
		h.log.Verbosef("Discarding diagnostics for superseded version %d of %s\n", res.Version, uri)
		return
	}

	params := &PublishDiagnosticsParams{
		URI:         DocumentURI(uri),
		Version:     &res.Version,
		Diagnostics: toWireDiagnostics(res.Diagnostics),
	}

	if err != nil {
		// Failure clears published diagnostics; the error itself goes to
		// the log channel only.
		params.Diagnostics = []Diagnostic{}
		h.log.Errorf("Diagnostics for %s failed: %s\n", uri, err.Error())
	}

	publishDiagnostics(context.Background(), h.conn, params)
}
