package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	didSaveNotification = "textDocument/didSave"
)

type didSaveHandler struct {
	requestBase

	uri string
}

func createDidSaveHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &didSaveHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *didSaveHandler) preprocess(params *json.RawMessage) error {
	var typedParams DidSaveTextDocumentParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal didSave params")
	}

	rh.uri = string(typedParams.TextDocument.URI)

	return nil
}

func (rh *didSaveHandler) work() error {
	rh.h.log.Debugf("Saved %s\n", rh.uri)

	go rh.h.computeAndPublish(rh.uri)

	return nil
}
