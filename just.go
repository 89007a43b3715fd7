package anyls

import (
	"bytes"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"

	"github.com/sebostien/any-ls/log"
)

const justProviderName = "just"

// justErrorPattern is the authoritative grammar for `just` failure
// output: a `severity: message` line, then a later line carrying the
// `——▶ <path>:<line>:<column>` location marker.  The path segment is
// ignored.
var justErrorPattern = regexp.MustCompile(`(\w+):\s([^\n]*)\n(?s:.*?)——▶[^\n]*:(\d+):(\d+)`)

// JustProvider produces diagnostics for justfiles by handing the buffer
// to `just --dry-run` through a transient file and parsing the tool's
// stderr.
type JustProvider struct {
	version string
	tmpPath string
	log     *log.Log

	// execute runs the tool against the transient file.  Swappable so
	// tests can observe invocations without a `just` binary installed.
	execute func(path string) (ok bool, stdout, stderr string, err error)

	// mu serializes the write-then-invoke sequence; two concurrent
	// diagnostic runs must not interleave writes to the transient file.
	mu        sync.Mutex
	lastHash  uint64
	lastDiags []Diagnostic
	hasLast   bool
}

// NewJustProvider probes for the `just` executable.  When it is absent
// the provider is unavailable and nil is returned; this is a silent
// capability reduction, not an error.
func NewJustProvider(l *log.Log) *JustProvider {
	path, err := exec.LookPath("just")
	if err != nil {
		l.Verbosef("just not found on path; justfile diagnostics disabled\n")
		return nil
	}

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		l.Verbosef("just --version failed (%s); justfile diagnostics disabled\n", err.Error())
		return nil
	}

	f, err := os.CreateTemp("", "any-ls-*.justfile")
	if err != nil {
		l.Warnf("Could not create transient justfile: %s\n", err.Error())
		return nil
	}
	f.Close()

	jp := &JustProvider{
		version: strings.TrimSpace(string(out)),
		tmpPath: f.Name(),
		log:     l,
	}
	jp.execute = jp.runJust

	l.Infof("justfile diagnostics enabled (%s)\n", jp.version)

	return jp
}

func (jp *JustProvider) Name() string {
	return justProviderName
}

func (jp *JustProvider) Supports(filetype string) bool {
	return filetype == "just" || filetype == "justfile"
}

func (jp *JustProvider) Capabilities() CapabilitySet {
	return CapabilitySet{
		DiagnosticProvider: &DiagnosticOptions{},
	}
}

// ComputeDiagnostics materializes contents into the transient file and
// invokes `just --dry-run` against it.  Byte-identical contents reuse
// the previous run's result without re-invoking the tool.
func (jp *JustProvider) ComputeDiagnostics(contents string) ([]Diagnostic, error) {
	jp.mu.Lock()
	defer jp.mu.Unlock()

	sum := xxhash.ChecksumString64(contents)
	if jp.hasLast && sum == jp.lastHash {
		return append([]Diagnostic(nil), jp.lastDiags...), nil
	}

	if err := os.WriteFile(jp.tmpPath, []byte(contents), 0600); err != nil {
		return nil, errors.Wrapf(err, "Failed to write transient justfile %s", jp.tmpPath)
	}

	ok, stdout, stderr, err := jp.execute(jp.tmpPath)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	if ok {
		diags = jp.parseStdout(stdout)
	} else {
		diags = jp.parseStderr(stderr)
	}

	jp.lastHash = sum
	jp.lastDiags = diags
	jp.hasLast = true

	return append([]Diagnostic(nil), diags...), nil
}

// Close removes the transient file.  The provider must not be invoked
// afterwards.
func (jp *JustProvider) Close() error {
	return os.Remove(jp.tmpPath)
}

func (jp *JustProvider) Hover(contents string, pos Position) (string, bool) {
	return "", false
}

func (jp *JustProvider) Complete() []Completion {
	return nil
}

// runJust spawns the dry-run check.  A non-zero exit is a normal
// outcome carrying parseable stderr; only spawn or encoding failures
// are errors.
func (jp *JustProvider) runJust(path string) (bool, string, string, error) {
	cmd := exec.Command("just", "--dry-run", "--justfile", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if _, exited := err.(*exec.ExitError); !exited {
			return false, "", "", errors.Wrap(err, "Failed to invoke just")
		}
	}

	if !utf8.Valid(stdout.Bytes()) || !utf8.Valid(stderr.Bytes()) {
		return false, "", "", errors.New("just produced output that is not valid UTF-8")
	}

	return err == nil, stdout.String(), stderr.String(), nil
}

// parseStdout handles the successful case.  The tool's informational
// output carries no diagnosable findings, so the result is always empty.
func (jp *JustProvider) parseStdout(contents string) []Diagnostic {
	return []Diagnostic{}
}

// parseStderr extracts at most one diagnostic from failure output.
// Unparseable output is a warning and an empty result, never a failed
// provider call.
func (jp *JustProvider) parseStderr(contents string) []Diagnostic {
	m := justErrorPattern.FindStringSubmatch(contents)
	if m == nil {
		jp.log.Warnf("Could not parse just stderr: '%s'\n", contents)
		return []Diagnostic{}
	}

	line, err := strconv.Atoi(m[3])
	if err != nil {
		line = 0
	}
	col, err := strconv.Atoi(m[4])
	if err != nil {
		col = 0
	}

	// The range spans exactly one column so a single character is
	// underlined at the reported location.
	return []Diagnostic{
		{
			Range: Range{
				Start: Position{Line: saturatingDec(line), Character: saturatingDec(col)},
				End:   Position{Line: saturatingDec(line), Character: col},
			},
			Severity: jp.parseSeverity(m[1]),
			Message:  m[2],
			Source:   justProviderName,
		},
	}
}

// parseSeverity maps the leading severity word.  Anything other than
// "error" downgrades to Warning so the finding stays visible, with a
// log entry naming the unrecognized word.
func (jp *JustProvider) parseSeverity(word string) Severity {
	if word == "error" {
		return SeverityError
	}

	jp.log.Warnf("Unknown severity when parsing just output: '%s'\n", word)
	return SeverityWarning
}

func saturatingDec(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
