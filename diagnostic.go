package anyls

// Severity classifies a diagnostic.  The numeric values for Error through
// Hint line up with the protocol's DiagnosticSeverity enumeration;
// SeverityUnknown means the producing tool did not report a recognizable
// severity.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	}
	return "unknown"
}

// Position points into a document.  Line is zero-based; Character is a
// zero-based offset on that line, counted in UTF-16 code units.
type Position struct {
	Line      int
	Character int
}

// Range is a contiguous span within a document.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic is a single problem report produced by a provider.  Source
// carries the tag of the provider that produced it.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Message  string
	Source   string
}
