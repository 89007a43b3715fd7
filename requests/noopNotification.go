package requests

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

const (
	// Notifications accepted but deliberately ignored.  There is no
	// cancellation primitive for in-flight diagnostics, so cancel
	// requests have nothing to act on.
	cancelRequestNotification          = "$/cancelRequest"
	willSaveNotification               = "textDocument/willSave"
	didChangeConfigurationNotification = "workspace/didChangeConfiguration"
)

type noopNotificationHandler struct {
	requestBase
}

func createNoopNotificationHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &noopNotificationHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *noopNotificationHandler) preprocess(params *json.RawMessage) error {
	return nil
}

func (rh *noopNotificationHandler) work() error {
	return nil
}
