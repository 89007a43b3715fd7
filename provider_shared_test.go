package anyls

// fakeProvider is a configurable Provider used across the package tests.
type fakeProvider struct {
	name        string
	filetypes   []string
	caps        CapabilitySet
	diags       []Diagnostic
	err         error
	hoverText   string
	hoverOK     bool
	completions []Completion

	// started is closed when ComputeDiagnostics begins; block, when
	// non-nil, stalls it until closed.  Used to order concurrent edits
	// against an in-flight computation.
	started chan struct{}
	block   chan struct{}

	calls int
}

func (f *fakeProvider) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeProvider) Supports(filetype string) bool {
	if len(f.filetypes) == 0 {
		return true
	}
	for _, ft := range f.filetypes {
		if ft == filetype {
			return true
		}
	}
	return false
}

func (f *fakeProvider) Capabilities() CapabilitySet {
	return f.caps
}

func (f *fakeProvider) ComputeDiagnostics(contents string) ([]Diagnostic, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.diags, nil
}

func (f *fakeProvider) Hover(contents string, pos Position) (string, bool) {
	return f.hoverText, f.hoverOK
}

func (f *fakeProvider) Complete() []Completion {
	return f.completions
}

func newTestRegistry(providers ...Provider) *Registry {
	r := &Registry{}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}
