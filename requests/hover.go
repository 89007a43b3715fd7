package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"

	anyls "github.com/sebostien/any-ls"
)

const (
	hoverMethod = "textDocument/hover"
)

// hoverHandler implements the `Hover` request
// https://microsoft.github.io/language-server-protocol/specification#textDocument_hover
type hoverHandler struct {
	requestBase

	uri    string
	pos    anyls.Position
	result *Hover
}

func createHoverHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &hoverHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *hoverHandler) preprocess(params *json.RawMessage) error {
	var typedParams TextDocumentPositionParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal hover params")
	}

	rh.uri = string(typedParams.TextDocument.URI)
	rh.pos = anyls.Position{
		Line:      typedParams.Position.Line,
		Character: typedParams.Position.Character,
	}

	return nil
}

func (rh *hoverHandler) work() error {
	text, err := rh.h.store.Hover(rh.uri, rh.pos)
	if err != nil {
		// Hover never escalates; an unknown document degrades to an
		// empty result.
		rh.h.log.Verbosef("Hover failed for %s: %s\n", rh.uri, err.Error())
		return nil
	}

	if text == "" {
		return nil
	}

	rh.result = &Hover{
		Contents: MarkupContent{
			Kind:  "plaintext",
			Value: text,
		},
	}

	return nil
}

func (rh *hoverHandler) reply() (interface{}, error) {
	return rh.result, nil
}
