package requests

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
)

// requestBase carries what every method handler needs: the request
// context, the request ID for the eventual reply, and the owning
// Handler.  Method handlers embed it and implement preprocess/work on
// top.
type requestBase struct {
	reqCtx context.Context
	reqID  jsonrpc2.ID
	h      *Handler
}

func createRequestBase(ctx context.Context, h *Handler, id jsonrpc2.ID) requestBase {
	return requestBase{
		reqCtx: ctx,
		reqID:  id,
		h:      h,
	}
}

func (rh *requestBase) ctx() context.Context {
	return rh.reqCtx
}

func (rh *requestBase) id() jsonrpc2.ID {
	return rh.reqID
}
