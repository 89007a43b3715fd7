package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	didChangeTextDocumentNotification = "textDocument/didChange"
)

type didChangeTextDocumentHandler struct {
	requestBase

	uri     string
	version int
	changes []TextDocumentContentChangeEvent
}

func createDidChangeTextDocumentHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &didChangeTextDocumentHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *didChangeTextDocumentHandler) preprocess(params *json.RawMessage) error {
	var typedParams DidChangeTextDocumentParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal didChange params")
	}

	rh.uri = string(typedParams.TextDocument.URI)
	rh.version = typedParams.TextDocument.Version
	rh.changes = typedParams.ContentChanges

	return nil
}

func (rh *didChangeTextDocumentHandler) work() error {
	if len(rh.changes) == 0 {
		return nil
	}

	// Full synchronization was negotiated, so the change payload is the
	// whole replacement text.
	change := rh.changes[0]
	if change.Range != nil {
		rh.h.log.Warnf("Ignoring ranged change for %s; only full sync is supported\n", rh.uri)
		return nil
	}

	if !rh.h.store.Change(rh.uri, rh.version, change.Text) {
		rh.h.log.Verbosef("Change for untracked document %s\n", rh.uri)
	}

	return nil
}
