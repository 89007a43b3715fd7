package anyls

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/sebostien/any-ls/log"
)

const propsProviderName = "props"

// Recognized property file names and repository-root markers.  Both are
// fixed, closed sets; they are not user-configurable.
var (
	propFileNames   = []string{".env", ".env.example"}
	stopMarkerNames = []string{".git"}
)

// maxParentDepth bounds the upward walk so a pathological filesystem
// cannot stall provider construction.
const maxParentDepth = 64

// Definition is one name/value pair discovered in a property file.
// Duplicate names across files and lines are all retained.
type Definition struct {
	FromPath string
	Name     string
	Value    string
}

// PropsProvider serves hover and completion for names defined in
// property files discovered by walking upward from a root directory.
// The index is built once at construction and never invalidated.
type PropsProvider struct {
	files       []string
	definitions map[string][]Definition
	log         *log.Log
}

// NewPropsProvider builds the definition index rooted at root.  When no
// property file is discovered the provider's prerequisite is missing
// and nil is returned, leaving the session without hover support.
func NewPropsProvider(fs afero.Fs, root string, l *log.Log) *PropsProvider {
	files := findPropFiles(fs, root)
	if len(files) == 0 {
		l.Verbosef("no property files above %s; hover disabled\n", root)
		return nil
	}

	p := &PropsProvider{
		files:       files,
		definitions: map[string][]Definition{},
		log:         l,
	}
	p.parseFiles(fs)

	l.Infof("property hover enabled; %d file(s) indexed from %s\n", len(files), root)

	return p
}

// findPropFiles walks from root toward the filesystem root, collecting
// recognized file names at every level.  A level containing a stop
// marker is still scanned, but the walk does not continue past it.  An
// unreadable level contributes nothing without aborting the walk.
func findPropFiles(fs afero.Fs, root string) []string {
	var found []string

	visited := map[string]bool{}
	dir := filepath.Clean(root)

	for depth := 0; depth < maxParentDepth; depth++ {
		if visited[dir] {
			// Symlink cycle.
			break
		}
		visited[dir] = true

		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			break
		}

		stop := false
		for _, entry := range entries {
			name := entry.Name()
			if containsName(stopMarkerNames, name) {
				stop = true
			} else if !entry.IsDir() && containsName(propFileNames, name) {
				found = append(found, filepath.Join(dir, name))
			}
		}

		if stop {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return found
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// parseFiles reads every collected file and appends a Definition for
// each `name=value` line.  The split is on the first `=`; lines without
// one are skipped.
func (p *PropsProvider) parseFiles(fs afero.Fs) {
	for _, fpath := range p.files {
		contents, err := afero.ReadFile(fs, fpath)
		if err != nil {
			p.log.Warnf("Could not read %s: %s\n", fpath, err.Error())
			continue
		}

		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)

			name, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}

			name = strings.TrimSpace(name)
			p.definitions[name] = append(p.definitions[name], Definition{
				FromPath: fpath,
				Name:     name,
				Value:    strings.TrimSpace(value),
			})
		}
	}
}

func (p *PropsProvider) Name() string {
	return propsProviderName
}

// Supports is unrestricted; definitions can be referenced from any
// document.
func (p *PropsProvider) Supports(filetype string) bool {
	return true
}

func (p *PropsProvider) Capabilities() CapabilitySet {
	hover := true
	return CapabilitySet{
		HoverProvider:      &hover,
		CompletionProvider: &CompletionOptions{LabelDetails: true},
	}
}

func (p *PropsProvider) ComputeDiagnostics(contents string) ([]Diagnostic, error) {
	return nil, nil
}

// Hover resolves the identifier token covering pos and renders every
// definition of that name.  Token characters are ASCII letters, digits
// and underscore; the column is counted in UTF-16 code units.
func (p *PropsProvider) Hover(contents string, pos Position) (string, bool) {
	// Skip ahead to the target line.
	offset := 0
	line := 0
	for _, r := range contents {
		if line == pos.Line {
			break
		}
		offset += utf8.RuneLen(r)
		if r == '\n' {
			line++
		}
	}
	rest := contents[offset:]

	// Scan for the token ending at or spanning the target column.
	// firstValid tracks the byte offset just past the last non-token
	// character seen before the column was reached.
	firstValid := 0
	bytesTraversed := 0
	column := 0

	for _, r := range rest {
		if !isTokenRune(r) {
			if column >= pos.Character {
				break
			}
			firstValid = bytesTraversed + utf8.RuneLen(r)
		}

		bytesTraversed += utf8.RuneLen(r)
		column += utf16Width(r)
	}

	if firstValid >= bytesTraversed || bytesTraversed <= pos.Character {
		return "", false
	}

	name := rest[firstValid:bytesTraversed]
	defs, ok := p.definitions[name]
	if !ok {
		return "", false
	}

	parts := make([]string, len(defs))
	for i, def := range defs {
		parts[i] = fmt.Sprintf("%s\n%s = %s", def.FromPath, def.Name, def.Value)
	}

	return strings.Join(parts, "\n\n"), true
}

// Complete offers one candidate per distinct definition name, with the
// first definition's value as detail.
func (p *PropsProvider) Complete() []Completion {
	names := make([]string, 0, len(p.definitions))
	for name := range p.definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]Completion, len(names))
	for i, name := range names {
		items[i] = Completion{
			Label:  name,
			Detail: p.definitions[name][0].Value,
		}
	}

	return items
}

// utf16Width is the number of UTF-16 code units r occupies: 2 for runes
// beyond the basic multilingual plane, 1 otherwise.
func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_'
}
