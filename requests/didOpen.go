package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	didOpenNotification = "textDocument/didOpen"
)

type didOpenHandler struct {
	requestBase

	uri      string
	filetype string
	version  int
	text     string
}

func createDidOpenHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &didOpenHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *didOpenHandler) preprocess(params *json.RawMessage) error {
	var typedParams DidOpenTextDocumentParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal didOpen params")
	}

	rh.uri = string(typedParams.TextDocument.URI)
	rh.filetype = typedParams.TextDocument.LanguageID
	rh.version = typedParams.TextDocument.Version
	rh.text = typedParams.TextDocument.Text

	return nil
}

func (rh *didOpenHandler) work() error {
	rh.h.log.Debugf("Opened %s (%s, v%d)\n", rh.uri, rh.filetype, rh.version)

	if !rh.h.store.Open(rh.uri, rh.filetype, rh.version, rh.text) {
		// No provider for this filetype; the document stays untracked.
		return nil
	}

	go rh.h.computeAndPublish(rh.uri)

	return nil
}
