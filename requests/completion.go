package requests

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
)

const (
	completionMethod = "textDocument/completion"
)

type completionHandler struct {
	requestBase

	uri    string
	result []CompletionItem
}

func createCompletionHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &completionHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *completionHandler) preprocess(params *json.RawMessage) error {
	var typedParams TextDocumentPositionParams
	if err := json.Unmarshal(*params, &typedParams); err != nil {
		return errors.Wrap(err, "Failed to unmarshal completion params")
	}

	rh.uri = string(typedParams.TextDocument.URI)

	return nil
}

func (rh *completionHandler) work() error {
	completions, err := rh.h.store.Completions(rh.uri)
	if err != nil {
		rh.h.log.Verbosef("Completion failed for %s: %s\n", rh.uri, err.Error())
		return nil
	}

	if len(completions) == 0 {
		return nil
	}

	rh.result = make([]CompletionItem, len(completions))
	for i, c := range completions {
		rh.result[i] = CompletionItem{
			Label:  c.Label,
			Detail: c.Detail,
		}
	}

	return nil
}

func (rh *completionHandler) reply() (interface{}, error) {
	return rh.result, nil
}
