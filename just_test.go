package anyls

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_ParseStderr(t *testing.T) {
	jp := &JustProvider{}

	tcs := []struct {
		name    string
		stderr  string
		message string
		start   Position
		end     Position
	}{
		{
			name:    "unknown token",
			stderr:  "error: Unknown start of token:\n ——▶ justfile:7:13\n  │\n7 │   just something here\n  │             ^",
			message: "Unknown start of token:",
			start:   Position{Line: 6, Character: 12},
			end:     Position{Line: 6, Character: 13},
		},
		{
			name:    "unexpected colon",
			stderr:  "error: Expected '&&', comment, end of file, end of line, identifier, or '(', but found ':'\n——▶ .tmpu9xSRk:3:4\n  │\n3 │ a:::b\n  │    ^",
			message: "Expected '&&', comment, end of file, end of line, identifier, or '(', but found ':'",
			start:   Position{Line: 2, Character: 3},
			end:     Position{Line: 2, Character: 4},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			diags := jp.parseStderr(tc.stderr)
			if len(diags) != 1 {
				t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
			}

			d := diags[0]
			if d.Severity != SeverityError {
				t.Errorf("Expected severity %v, got %v", SeverityError, d.Severity)
			}
			if d.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, d.Message)
			}
			if d.Range.Start != tc.start || d.Range.End != tc.end {
				t.Errorf("Expected range %v-%v, got %v-%v", tc.start, tc.end, d.Range.Start, d.Range.End)
			}
			if d.Source != justProviderName {
				t.Errorf("Expected source %q, got %q", justProviderName, d.Source)
			}
		})
	}
}

func Test_ParseStderr_NoLocationMarker(t *testing.T) {
	jp := &JustProvider{}

	diags := jp.parseStderr("error: something went wrong\nbut no location follows")
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics for unparseable stderr, got %d", len(diags))
	}
}

func Test_ParseStdout_AlwaysEmpty(t *testing.T) {
	jp := &JustProvider{}

	diags := jp.parseStdout("echo 'hello'\nhello\n")
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics from stdout, got %d", len(diags))
	}
}

func Test_ParseSeverity(t *testing.T) {
	jp := &JustProvider{}

	if got := jp.parseSeverity("error"); got != SeverityError {
		t.Errorf("Expected %v for 'error', got %v", SeverityError, got)
	}
	if got := jp.parseSeverity("mystery"); got != SeverityWarning {
		t.Errorf("Expected unrecognized severity to fall back to %v, got %v", SeverityWarning, got)
	}
}

func Test_JustProvider_Supports(t *testing.T) {
	jp := &JustProvider{}

	for _, ft := range []string{"just", "justfile"} {
		if !jp.Supports(ft) {
			t.Errorf("Expected filetype %q to be supported", ft)
		}
	}
	if jp.Supports("makefile") {
		t.Error("Expected filetype 'makefile' to be unsupported")
	}
}

func Test_JustProvider_ContentMemo(t *testing.T) {
	runs := 0

	jp := &JustProvider{tmpPath: filepath.Join(t.TempDir(), "justfile")}
	jp.execute = func(path string) (bool, string, string, error) {
		runs++
		return false, "", "error: boom\n——▶ justfile:1:1\n", nil
	}

	first, err := jp.ComputeDiagnostics("bad contents")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if len(first) != 1 || runs != 1 {
		t.Fatalf("Expected 1 diagnostic from 1 run, got %d from %d", len(first), runs)
	}

	second, err := jp.ComputeDiagnostics("bad contents")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if runs != 1 {
		t.Errorf("Expected identical contents to reuse the previous run, got %d runs", runs)
	}
	if len(second) != 1 || second[0] != first[0] {
		t.Error("Expected memoized result to match the original")
	}

	if _, err := jp.ComputeDiagnostics("different contents"); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if runs != 2 {
		t.Errorf("Expected changed contents to re-run the tool, got %d runs", runs)
	}
}

func Test_JustProvider_CloseRemovesTransientFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "justfile")
	if err != nil {
		t.Fatalf("Failed to create temp file: %s", err.Error())
	}
	f.Close()

	jp := &JustProvider{tmpPath: f.Name()}
	if err := jp.Close(); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Errorf("Expected the transient file to be removed, stat returned %v", err)
	}
}

func Test_JustProvider_SuccessIsEmpty(t *testing.T) {
	jp := &JustProvider{tmpPath: filepath.Join(t.TempDir(), "justfile")}
	jp.execute = func(path string) (bool, string, string, error) {
		return true, "echo hi\n", "", nil
	}

	diags, err := jp.ComputeDiagnostics("greet:\n\techo hi\n")
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics on success, got %d", len(diags))
	}
}
