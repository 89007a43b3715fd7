package requests

import (
	anyls "github.com/sebostien/any-ls"
)

// DocumentURI is a document identifier
// https://github.com/Microsoft/language-server-protocol/blob/master/protocol.md#uri
type DocumentURI string

// Position points to a location in a text document.  Character offsets
// are counted in UTF-16 code units.
type Position struct {
	// Line position in a document (zero-based)
	Line int `json:"line"`

	// Character offset on a line in a document (zero-based)
	Character int `json:"character"`
}

// Range is a contiguous block within a document
type Range struct {
	// Start is the range's start position
	Start Position `json:"start"`

	// End is the range's end position
	End Position `json:"end"`
}

// Diagnostic is a problem report attached to a document version
type Diagnostic struct {
	Range Range `json:"range"`

	// Severity is 1-4 (error through hint); omitted when the producer
	// did not report one.
	Severity *int `json:"severity,omitempty"`

	// Source names the provider that produced this diagnostic
	Source string `json:"source,omitempty"`

	Message string `json:"message"`
}

// toWireDiagnostics converts domain diagnostics.  The result is never
// nil so an empty set marshals as [] and clears client-side markers.
func toWireDiagnostics(diags []anyls.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			Range: Range{
				Start: Position{Line: d.Range.Start.Line, Character: d.Range.Start.Character},
				End:   Position{Line: d.Range.End.Line, Character: d.Range.End.Character},
			},
			Source:  d.Source,
			Message: d.Message,
		}

		if d.Severity != anyls.SeverityUnknown {
			severity := int(d.Severity)
			out[i].Severity = &severity
		}
	}
	return out
}

// TextDocumentIdentifier is an identifier for a text document
type TextDocumentIdentifier struct {
	// URI of the text document
	URI DocumentURI `json:"uri"`
}

// VersionedTextDocumentIdentifier carries the client-supplied version
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier

	Version int `json:"version"`
}

// TextDocumentItem is the full payload of an opened document
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

type TextDocumentPositionParams struct {
	// TextDocument identifies the document
	TextDocument TextDocumentIdentifier `json:"textDocument"`

	// Position inside the text document
	Position Position `json:"position"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent is one change to a document.  This
// server negotiates full synchronization, so Text is always the whole
// new document and Range/RangeLength are absent.
type TextDocumentContentChangeEvent struct {
	Range       *Range `json:"range,omitempty"`
	RangeLength *int   `json:"rangeLength,omitempty"`
	Text        string `json:"text"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// PublishDiagnosticsParams carries the full current diagnostic set for
// one document; the client replaces anything it held before.
type PublishDiagnosticsParams struct {
	URI         DocumentURI  `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// MarkupContent is hover payload text
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Hover is the response to a textDocument/hover request
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// CompletionItem is a single completion candidate
type CompletionItem struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

// DocumentDiagnosticParams is the pull-diagnostics request payload
type DocumentDiagnosticParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// FullDocumentDiagnosticReport is the pull-diagnostics response
type FullDocumentDiagnosticReport struct {
	Kind  string       `json:"kind"`
	Items []Diagnostic `json:"items"`
}

type InitializeParams struct {
	ProcessID int `json:"processId,omitempty"`

	RootURI DocumentURI `json:"rootUri,omitempty"`

	Capabilities interface{} `json:"capabilities"`
}

// InitializeResult is the response to the initialize request, and
// includes information regarding the server's capabilities
type InitializeResult struct {
	// Capabilities describe what the server is capable of handling
	Capabilities ServerCapabilities `json:"capabilities"`

	ServerInfo *ServerInfo `json:"serverInfo,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SaveOptions includes options that the server can indicate to the client.
type SaveOptions struct {
	// IncludeText specifies whether the client should include file
	// content on save
	IncludeText bool `json:"includeText"`
}

type TextDocumentSyncOptions struct {
	OpenClose bool         `json:"openClose,omitempty"`
	Change    int          `json:"change"`
	Save      *SaveOptions `json:"save,omitempty"`
}

// CompletionItemOptions advertises which extra completion item fields
// the server produces.
type CompletionItemOptions struct {
	LabelDetailsSupport bool `json:"labelDetailsSupport,omitempty"`
}

type CompletionOptions struct {
	ResolveProvider   bool                   `json:"resolveProvider,omitempty"`
	TriggerCharacters []string               `json:"triggerCharacters,omitempty"`
	CompletionItem    *CompletionItemOptions `json:"completionItem,omitempty"`
}

type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitempty"`
	InterFileDependencies bool   `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics"`
}

type ServerCapabilities struct {
	PositionEncoding   string                   `json:"positionEncoding,omitempty"`
	TextDocumentSync   *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	HoverProvider      bool                     `json:"hoverProvider,omitempty"`
	CompletionProvider *CompletionOptions       `json:"completionProvider,omitempty"`
	DiagnosticProvider *DiagnosticOptions       `json:"diagnosticProvider,omitempty"`
}

// LogMessageParams is used by the LogMessageNotification to send
// messages from the server to the client.
type LogMessageParams struct {
	// Type is the message type. See {@link MessageType}
	Type MessageType `json:"type"`

	// Message is the actual message
	Message string `json:"message"`
}

// MessageType is the type of message
type MessageType int

const (
	_ MessageType = iota

	// Error is an error message.
	Error

	// Warning is a warning message.
	Warning

	// Info is an information message.
	Info

	// Log is a log message.
	Log
)
