// Package anyls implements the provider engine behind the any-ls language
// server: a set of independent providers (justfile diagnostics via the
// `just` binary, property-file hover and completion) composed behind a
// single negotiated capability set and a shared document store.
package anyls

import (
	"io"

	"github.com/spf13/afero"

	"github.com/sebostien/any-ls/log"
)

// Completion is a single completion candidate offered by a provider.
type Completion struct {
	Label  string
	Detail string
}

// Provider is the capability surface shared by every provider variant.
// The variant set is closed: providers are enumerated by NewRegistry,
// not registered by third parties at runtime.
type Provider interface {
	// Name is the short tag used in logs and as the diagnostic source.
	Name() string

	// Supports reports whether this provider handles documents of the
	// given filetype.  A provider with no restriction returns true for
	// every filetype.
	Supports(filetype string) bool

	// Capabilities returns the fields this provider contributes to the
	// negotiated capability set.
	Capabilities() CapabilitySet

	// ComputeDiagnostics inspects the full document contents and returns
	// current diagnostics.  An empty result with a nil error is a
	// successful "no findings" outcome, distinct from a failure.
	ComputeDiagnostics(contents string) ([]Diagnostic, error)

	// Hover resolves hover text for the given position, reporting false
	// when there is nothing to show.
	Hover(contents string, pos Position) (string, bool)

	// Complete returns the provider's completion candidates.
	Complete() []Completion
}

// Registry owns the ordered list of providers active in this session.
// Registration order is significant: it decides capability-merge
// precedence and diagnostic aggregation order.
type Registry struct {
	providers []Provider
	log       *log.Log
}

// NewRegistry probes each known provider exactly once.  A provider whose
// prerequisite is unavailable (no `just` executable on the path, no
// property file above root) is skipped without error; the session just
// advertises less.  There is no re-probing during the session.
func NewRegistry(fs afero.Fs, root string, l *log.Log) *Registry {
	r := &Registry{log: l}

	if j := NewJustProvider(l); j != nil {
		r.Register(j)
	}
	if p := NewPropsProvider(fs, root, l); p != nil {
		r.Register(p)
	}

	return r
}

// Register appends a provider.  Earlier providers win capability-merge
// ties, so probe order is a deliberate policy, not an accident.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
	r.log.Verbosef("Registered provider '%s'\n", p.Name())
}

// Close releases resources held by providers, such as the justfile
// provider's transient file.  Called once when serving ends.
func (r *Registry) Close() error {
	var first error
	for _, p := range r.providers {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// ProvidersFor returns, in registration order, every provider that
// supports the given filetype.
func (r *Registry) ProvidersFor(filetype string) []Provider {
	var matched []Provider
	for _, p := range r.providers {
		if p.Supports(filetype) {
			matched = append(matched, p)
		}
	}
	return matched
}

// MergedCapabilities folds every provider's capability set into one.
// The two process-wide invariants are seeded first: positions are always
// UTF-16 and documents are always synchronized by full replacement.  No
// provider can override either.  Remaining fields are filled by the
// first provider to offer them.
func (r *Registry) MergedCapabilities() CapabilitySet {
	encoding := PositionEncodingUTF16
	sync := SyncFull

	merged := CapabilitySet{
		PositionEncoding: &encoding,
		TextDocumentSync: &sync,
	}

	for _, p := range r.providers {
		merged.fill(p.Capabilities())
	}

	return merged
}
