package requests

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

const (
	initializedNotification = "initialized"
)

type initializedHandler struct {
	requestBase
}

func createInitializedHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	ih := &initializedHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return ih
}

func (ih *initializedHandler) preprocess(params *json.RawMessage) error {
	return nil
}

func (ih *initializedHandler) work() error {
	providers := ih.h.registry.Providers()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}

	ih.h.log.Infof("Server initialized; providers %v; %s\n", names, ih.h.load.String())

	return nil
}
