package requests

import (
	"context"

	"github.com/dgryski/go-mph"
	"github.com/sourcegraph/jsonrpc2"
)

// IniterFunc creates the request handler for one JSONRPC2 method.
type IniterFunc func(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler

func getIniterFuncs() map[string]IniterFunc {
	return map[string]IniterFunc{
		initializeMethod:                   createInitializeHandler,
		initializedNotification:            createInitializedHandler,
		shutdownMethod:                     createShutdownHandler,
		exitNotification:                   createExitHandler,
		didOpenNotification:                createDidOpenHandler,
		didChangeTextDocumentNotification:  createDidChangeTextDocumentHandler,
		didSaveNotification:                createDidSaveHandler,
		didCloseNotification:               createDidCloseHandler,
		hoverMethod:                        createHoverHandler,
		completionMethod:                   createCompletionHandler,
		documentDiagnosticMethod:           createDocumentDiagnosticHandler,
		cancelRequestNotification:          createNoopNotificationHandler,
		willSaveNotification:               createNoopNotificationHandler,
		didChangeConfigurationNotification: createNoopNotificationHandler,
	}
}

// requestMap is a minimal-perfect-hash lookup from method name to its
// initer.  The method set is fixed at startup, which is exactly the
// shape mph wants.
type requestMap struct {
	t *mph.Table
	k []string
	f []IniterFunc
}

func newRequestMap() *requestMap {
	m := getIniterFuncs()

	keys := make([]string, len(m))
	funcs := make([]IniterFunc, len(m))

	i := 0
	for k, v := range m {
		keys[i] = k
		funcs[i] = v
		i++
	}

	t := mph.New(keys)

	return &requestMap{
		t: t,
		k: keys,
		f: funcs,
	}
}

func (rq *requestMap) Lookup(name string) (IniterFunc, bool) {
	i := rq.t.Query(name)
	if rq.k[i] != name {
		return nil, false
	}
	return rq.f[i], true
}
