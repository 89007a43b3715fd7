package anyls

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/sebostien/any-ls/log"
)

// ErrNoDocument reports a request against a URI with no open entry.
var ErrNoDocument = errors.New("no such document")

// Document is the tracked state of one open text document.  Contents is
// replaced wholesale on every change; the provider list is resolved once
// at open time and never re-derived.
type Document struct {
	URI       string
	Filetype  string
	Version   int
	Contents  string
	providers []Provider
}

// Store maps open document URIs to their state.  A single mutex guards
// the map; it is held only around map reads and writes, never across a
// provider invocation.
type Store struct {
	mu        sync.Mutex
	documents map[string]*Document
	registry  *Registry
	log       *log.Log
}

// NewStore creates an empty document store backed by the given registry.
func NewStore(registry *Registry, l *log.Log) *Store {
	return &Store{
		documents: map[string]*Document{},
		registry:  registry,
		log:       l,
	}
}

// Open tracks a newly opened document.  When no provider supports the
// filetype the document gets no local entry and false is returned; the
// transport still knows the document, this store does not.
func (s *Store) Open(uri, filetype string, version int, text string) bool {
	providers := s.registry.ProvidersFor(filetype)
	if len(providers) == 0 {
		s.log.Infof("No provider for filetype '%s'; not tracking %s\n", filetype, uri)
		return false
	}

	s.mu.Lock()
	s.documents[uri] = &Document{
		URI:       uri,
		Filetype:  filetype,
		Version:   version,
		Contents:  text,
		providers: providers,
	}
	s.mu.Unlock()

	return true
}

// Change replaces the document's contents and version wholesale.
func (s *Store) Change(uri string, version int, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[uri]
	if !ok {
		return false
	}

	d.Contents = text
	d.Version = version
	return true
}

// Close removes the document entry, returning its last version so the
// caller can publish an empty diagnostic set for it.
func (s *Store) Close(uri string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[uri]
	if !ok {
		return 0, false
	}

	delete(s.documents, uri)
	return d.Version, true
}

// Version returns the current version of an open document.
func (s *Store) Version(uri string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[uri]
	if !ok {
		return 0, false
	}
	return d.Version, true
}

// DiagnosticsResult is one aggregation pass over a document's providers.
// Stale is set when the document changed (or closed) while providers
// were running; stale results must not be published.
type DiagnosticsResult struct {
	Version     int
	Diagnostics []Diagnostic
	Stale       bool
}

// ComputeDiagnostics runs every assigned provider, in assignment order,
// against a snapshot of the document taken under lock.  Provider
// invocation happens with the lock released; it may block on an external
// process.
//
// When the document is unknown the result is nil and the error wraps
// ErrNoDocument.  When at least one provider succeeds (an empty list
// counts), the result concatenates the successful providers' diagnostics
// and failures are only logged.  When every provider fails, the last
// failure is returned alongside a result carrying the version so the
// caller can clear published diagnostics.
func (s *Store) ComputeDiagnostics(uri string) (*DiagnosticsResult, error) {
	s.mu.Lock()
	d, ok := s.documents[uri]
	if !ok {
		s.mu.Unlock()
		return nil, errors.Wrap(ErrNoDocument, uri)
	}
	contents := d.Contents
	version := d.Version
	providers := d.providers
	s.mu.Unlock()

	var collected []Diagnostic
	successes := 0
	var lastErr error

	for _, p := range providers {
		diags, err := p.ComputeDiagnostics(contents)
		if err != nil {
			s.log.Errorf("%s: %s diagnostics failed: %s\n", uri, p.Name(), err.Error())
			lastErr = err
			continue
		}

		successes++
		collected = append(collected, diags...)
	}

	res := &DiagnosticsResult{
		Version:     version,
		Diagnostics: collected,
	}

	s.mu.Lock()
	cur, ok := s.documents[uri]
	res.Stale = !ok || cur.Version != version
	s.mu.Unlock()

	if successes == 0 && lastErr != nil {
		res.Diagnostics = nil
		return res, lastErr
	}

	return res, nil
}

// Hover routes the request to the one assigned provider that advertises
// hover.  A miss is an empty result, never an error; only an unknown
// document is.
func (s *Store) Hover(uri string, pos Position) (string, error) {
	d, err := s.snapshot(uri)
	if err != nil {
		return "", err
	}

	for _, p := range d.providers {
		caps := p.Capabilities()
		if caps.HoverProvider == nil || !*caps.HoverProvider {
			continue
		}

		text, ok := p.Hover(d.Contents, pos)
		if !ok {
			return "", nil
		}
		return text, nil
	}

	return "", nil
}

// Completions routes to the one assigned provider that advertises
// completion.
func (s *Store) Completions(uri string) ([]Completion, error) {
	d, err := s.snapshot(uri)
	if err != nil {
		return nil, err
	}

	for _, p := range d.providers {
		if p.Capabilities().CompletionProvider == nil {
			continue
		}
		return p.Complete(), nil
	}

	return nil, nil
}

// snapshot copies the fields needed to serve a request outside the lock.
func (s *Store) snapshot(uri string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[uri]
	if !ok {
		return Document{}, errors.Wrap(ErrNoDocument, uri)
	}
	return *d, nil
}
