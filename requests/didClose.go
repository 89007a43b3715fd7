package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	didCloseNotification = "textDocument/didClose"
)

type didCloseHandler struct {
	requestBase

	uri string
}

func createDidCloseHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &didCloseHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *didCloseHandler) preprocess(params *json.RawMessage) error {
	var typedParams DidCloseTextDocumentParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal didClose params")
	}

	rh.uri = string(typedParams.TextDocument.URI)

	return nil
}

func (rh *didCloseHandler) work() error {
	version, tracked := rh.h.store.Close(rh.uri)

	// Publish an empty set unconditionally so the client drops any
	// markers it still shows, tracked document or not.
	params := &PublishDiagnosticsParams{
		URI:         DocumentURI(rh.uri),
		Diagnostics: []Diagnostic{},
	}
	if tracked {
		params.Version = &version
	}

	publishDiagnostics(rh.ctx(), rh.h.conn, params)

	rh.h.log.Debugf("Closed %s\n", rh.uri)

	return nil
}
