package anyls

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebostien/any-ls/log"
)

func Test_MergedCapabilities_FirstRegisteredWins(t *testing.T) {
	hoverA := true
	hoverB := false

	a := &fakeProvider{name: "a", caps: CapabilitySet{HoverProvider: &hoverA}}
	b := &fakeProvider{
		name: "b",
		caps: CapabilitySet{
			HoverProvider:      &hoverB,
			CompletionProvider: &CompletionOptions{LabelDetails: true},
		},
	}

	r := newTestRegistry(a, b)
	merged := r.MergedCapabilities()

	if merged.HoverProvider == nil {
		t.Fatal("Expected hover capability to be set")
	}
	if *merged.HoverProvider != hoverA {
		t.Errorf("Expected first-registered hover value %v, got %v", hoverA, *merged.HoverProvider)
	}

	if merged.CompletionProvider == nil {
		t.Fatal("Expected completion capability to be filled by the second provider")
	}
	if !merged.CompletionProvider.LabelDetails {
		t.Error("Expected second provider's completion options to survive the merge")
	}
}

func Test_MergedCapabilities_Invariants(t *testing.T) {
	encoding := "utf-8"
	sync := SyncIncremental

	p := &fakeProvider{
		caps: CapabilitySet{
			PositionEncoding: &encoding,
			TextDocumentSync: &sync,
		},
	}

	merged := newTestRegistry(p).MergedCapabilities()

	if merged.PositionEncoding == nil || *merged.PositionEncoding != PositionEncodingUTF16 {
		t.Errorf("Expected position encoding %s, got %v", PositionEncodingUTF16, merged.PositionEncoding)
	}
	if merged.TextDocumentSync == nil || *merged.TextDocumentSync != SyncFull {
		t.Errorf("Expected full sync, got %v", merged.TextDocumentSync)
	}
}

func Test_MergedCapabilities_EmptyRegistry(t *testing.T) {
	merged := newTestRegistry().MergedCapabilities()

	if merged.PositionEncoding == nil || merged.TextDocumentSync == nil {
		t.Error("Expected invariant fields to be present with no providers")
	}
	if merged.HoverProvider != nil || merged.CompletionProvider != nil || merged.DiagnosticProvider != nil {
		t.Error("Expected provider-sourced fields to be absent with no providers")
	}
}

func Test_Register_LogsProviderName(t *testing.T) {
	var buf bytes.Buffer
	l := log.CreateLog(&buf)
	l.SetLevel(log.Verbose)

	r := &Registry{log: l}
	r.Register(&fakeProvider{name: "logged-one"})

	if !strings.Contains(buf.String(), "logged-one") {
		t.Errorf("Expected the registration to be logged, got %q", buf.String())
	}
}

type closingProvider struct {
	fakeProvider

	closed bool
}

func (c *closingProvider) Close() error {
	c.closed = true
	return nil
}

func Test_Registry_CloseReleasesProviders(t *testing.T) {
	plain := &fakeProvider{name: "plain"}
	closing := &closingProvider{fakeProvider: fakeProvider{name: "closing"}}

	r := newTestRegistry(plain, closing)

	if err := r.Close(); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if !closing.closed {
		t.Error("Expected the closable provider to be closed")
	}
}

func Test_ProvidersFor(t *testing.T) {
	just := &fakeProvider{name: "just", filetypes: []string{"just", "justfile"}}
	all := &fakeProvider{name: "all"}

	r := newTestRegistry(just, all)

	matched := r.ProvidersFor("justfile")
	if len(matched) != 2 {
		t.Fatalf("Expected 2 providers for 'justfile', got %d", len(matched))
	}
	if matched[0].Name() != "just" {
		t.Error("Expected registration order to be preserved")
	}

	matched = r.ProvidersFor("markdown")
	if len(matched) != 1 || matched[0].Name() != "all" {
		t.Errorf("Expected only the unrestricted provider for 'markdown', got %d", len(matched))
	}
}
