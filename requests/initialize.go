package requests

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"

	anyls "github.com/sebostien/any-ls"
)

const (
	initializeMethod = "initialize"

	serverName = "any-ls"
)

// Version is the server version reported during initialization.
var Version = "0.2.0"

type initializeHandler struct {
	requestBase

	rootURI string
	result  *InitializeResult
}

func createInitializeHandler(ctx context.Context, h *Handler, req *jsonrpc2.Request) requestHandler {
	rh := &initializeHandler{
		requestBase: createRequestBase(ctx, h, req.ID),
	}

	return rh
}

func (rh *initializeHandler) preprocess(params *json.RawMessage) error {
	if params != nil {
		var typedParams InitializeParams
		if err := json.Unmarshal(*params, &typedParams); err != nil {
			return err
		}
		rh.rootURI = string(typedParams.RootURI)
	}

	return nil
}

func (rh *initializeHandler) work() error {
	rh.h.log.Verbosef("Initializing; client root '%s'\n", rh.rootURI)

	rh.result = &InitializeResult{
		Capabilities: toWireCapabilities(rh.h.registry.MergedCapabilities()),
		ServerInfo: &ServerInfo{
			Name:    serverName,
			Version: Version,
		},
	}

	return nil
}

func (rh *initializeHandler) reply() (interface{}, error) {
	return rh.result, nil
}

// toWireCapabilities translates the merged capability set into the
// protocol shape.  Absent fields stay absent on the wire.
func toWireCapabilities(caps anyls.CapabilitySet) ServerCapabilities {
	sc := ServerCapabilities{}

	if caps.PositionEncoding != nil {
		sc.PositionEncoding = *caps.PositionEncoding
	}

	if caps.TextDocumentSync != nil {
		sc.TextDocumentSync = &TextDocumentSyncOptions{
			OpenClose: true,
			Change:    int(*caps.TextDocumentSync),
			Save:      &SaveOptions{IncludeText: false},
		}
	}

	if caps.HoverProvider != nil {
		sc.HoverProvider = *caps.HoverProvider
	}

	if caps.CompletionProvider != nil {
		sc.CompletionProvider = &CompletionOptions{}
		if caps.CompletionProvider.LabelDetails {
			sc.CompletionProvider.CompletionItem = &CompletionItemOptions{
				LabelDetailsSupport: true,
			}
		}
	}

	if caps.DiagnosticProvider != nil {
		sc.DiagnosticProvider = &DiagnosticOptions{
			InterFileDependencies: caps.DiagnosticProvider.InterFileDependencies,
			WorkspaceDiagnostics:  caps.DiagnosticProvider.WorkspaceDiagnostics,
		}
	}

	return sc
}
