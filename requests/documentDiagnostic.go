package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	documentDiagnosticMethod = "textDocument/diagnostic"
)

// documentDiagnosticHandler serves pull diagnostics.  Unlike the pushed
// recomputation after open/save, an unknown document here surfaces as a
// request-level error.
type documentDiagnosticHandler struct {
	requestBase

	uri    string
	report *FullDocumentDiagnosticReport
	err    error
}

func createDocumentDiagnosticHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &documentDiagnosticHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *documentDiagnosticHandler) preprocess(params *json.RawMessage) error {
	var typedParams DocumentDiagnosticParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal diagnostic params")
	}

	rh.uri = string(typedParams.TextDocument.URI)

	return nil
}

// work starts the aggregation on its own goroutine.  The store snapshots
// under its own lock, so the queue goroutine stays free to serve other
// documents while an external tool runs; the handler re-enters the
// outgoing queue when the result is ready.
func (rh *documentDiagnosticHandler) work() error {
	go func() {
		res, err := rh.h.store.ComputeDiagnostics(rh.uri)
		switch {
		case res == nil:
			// Document not found.
			rh.err = err
		case err != nil:
			// Every provider failed; the last failure is the request error.
			rh.err = err
		default:
			rh.report = &FullDocumentDiagnosticReport{
				Kind:  "full",
				Items: toWireDiagnostics(res.Diagnostics),
			}
		}

		rh.h.outgoingQueue <- rh
	}()

	return nil
}

func (rh *documentDiagnosticHandler) reply() (interface{}, error) {
	return rh.report, rh.err
}

func (rh *documentDiagnosticHandler) deferredReply() {}
