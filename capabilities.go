package anyls

// PositionEncodingUTF16 is the only position encoding this server speaks.
const PositionEncodingUTF16 = "utf-16"

// TextDocumentSyncKind mirrors the protocol's document synchronization
// modes.
type TextDocumentSyncKind int

const (
	SyncNone TextDocumentSyncKind = iota
	SyncFull
	SyncIncremental
)

// CompletionOptions describes a provider's completion support.
type CompletionOptions struct {
	LabelDetails bool
}

// DiagnosticOptions describes a provider's pull-diagnostic support.
type DiagnosticOptions struct {
	InterFileDependencies bool
	WorkspaceDiagnostics  bool
}

// CapabilitySet is the closed list of negotiated capability fields.  A
// nil field is absent; a non-nil field is present with a value.
type CapabilitySet struct {
	PositionEncoding   *string
	TextDocumentSync   *TextDocumentSyncKind
	HoverProvider      *bool
	CompletionProvider *CompletionOptions
	DiagnosticProvider *DiagnosticOptions
}

// capabilityFields drives the merge.  Each negotiated field appears here
// exactly once, so the full list is auditable in one place.
var capabilityFields = []struct {
	name   string
	filled func(c *CapabilitySet) bool
	assign func(dst, src *CapabilitySet)
}{
	{
		"positionEncoding",
		func(c *CapabilitySet) bool { return c.PositionEncoding != nil },
		func(dst, src *CapabilitySet) { dst.PositionEncoding = src.PositionEncoding },
	},
	{
		"textDocumentSync",
		func(c *CapabilitySet) bool { return c.TextDocumentSync != nil },
		func(dst, src *CapabilitySet) { dst.TextDocumentSync = src.TextDocumentSync },
	},
	{
		"hoverProvider",
		func(c *CapabilitySet) bool { return c.HoverProvider != nil },
		func(dst, src *CapabilitySet) { dst.HoverProvider = src.HoverProvider },
	},
	{
		"completionProvider",
		func(c *CapabilitySet) bool { return c.CompletionProvider != nil },
		func(dst, src *CapabilitySet) { dst.CompletionProvider = src.CompletionProvider },
	},
	{
		"diagnosticProvider",
		func(c *CapabilitySet) bool { return c.DiagnosticProvider != nil },
		func(dst, src *CapabilitySet) { dst.DiagnosticProvider = src.DiagnosticProvider },
	},
}

// fill copies each field of other into c only where c has no value yet.
// A field set by an earlier provider is never overwritten, so provider
// registration order decides precedence on conflicts.
func (c *CapabilitySet) fill(other CapabilitySet) {
	for _, f := range capabilityFields {
		if f.filled(c) {
			continue
		}
		if f.filled(&other) {
			f.assign(c, &other)
		}
	}
}
