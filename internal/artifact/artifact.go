// Package artifact manages the files the engine accumulates code into. An
// artifact moves through empty, seeded, accumulating, and finalized states;
// every append strips the closing terminator first and re-appends it after,
// so the file is well-formed between any two steps.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05"

// Model replies sometimes echo the generation banner back; only one may
// survive at the top of the file.
var generatedHeaderRe = regexp.MustCompile(`(?m)^(?://|--)\s*Generated:.*\r?\n`)

// Artifact is one output file accumulating generated members. Terminator is
// the closing statement the file must end with, empty when the category has
// none. CommentPrefix is the line-comment marker of the artifact's grammar,
// used for the generation banner. Now is swappable for tests.
type Artifact struct {
	Path          string
	Terminator    string
	CommentPrefix string
	Now           func() time.Time
}

// New creates an artifact handle for a path and terminator.
func New(path, terminator string) *Artifact {
	return &Artifact{Path: path, Terminator: terminator, CommentPrefix: "//", Now: time.Now}
}

// Exists reports whether the artifact file is present on disk.
func (a *Artifact) Exists() bool {
	_, err := os.Stat(a.Path)
	return err == nil
}

// Read returns the current artifact content, or "" when the file is absent.
func (a *Artifact) Read() (string, error) {
	data, err := os.ReadFile(a.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return string(data), nil
}

// Seed writes the initial content, replacing whatever was there. A
// generation banner is prepended and the terminator appended when declared.
func (a *Artifact) Seed(content string) error {
	content = a.clean(content)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Generated: %s\n", a.CommentPrefix, a.Now().Format(timestampFormat))
	b.WriteString(content)
	if a.Terminator != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Terminator)
	}
	b.WriteString("\n")

	return a.write(b.String())
}

// Append merges a fragment into the artifact: read, strip the terminator,
// append, re-append the terminator, write back.
func (a *Artifact) Append(fragment string) error {
	fragment = a.clean(fragment)

	current, err := a.Read()
	if err != nil {
		return err
	}

	body := a.stripTerminator(current)
	body = strings.TrimRight(body, "\n")

	var b strings.Builder
	b.WriteString(body)
	if body != "" {
		b.WriteString("\n\n")
	}
	b.WriteString(fragment)
	if a.Terminator != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Terminator)
	}
	b.WriteString("\n")

	return a.write(b.String())
}

// Finalize guarantees exactly one terminator at the end of the artifact.
// No-op when the file is absent or the category declares no terminator.
func (a *Artifact) Finalize() error {
	if a.Terminator == "" || !a.Exists() {
		return nil
	}

	current, err := a.Read()
	if err != nil {
		return err
	}

	body := strings.TrimRight(a.stripTerminator(current), "\n")
	return a.write(body + "\n\n" + a.Terminator + "\n")
}

// clean drops generation banners the model echoed back inside a fragment,
// along with any terminator it carried; Seed and Append re-append the single
// authoritative ones.
func (a *Artifact) clean(content string) string {
	content = generatedHeaderRe.ReplaceAllString(content, "")
	content = a.stripTerminator(content)
	return strings.TrimSpace(content)
}

// stripTerminator removes every occurrence of the terminator, also matching
// the form without a trailing semicolon that models sometimes emit.
func (a *Artifact) stripTerminator(content string) string {
	if a.Terminator == "" {
		return content
	}
	content = strings.ReplaceAll(content, a.Terminator, "")
	if bare := strings.TrimSuffix(a.Terminator, ";"); bare != a.Terminator {
		content = strings.ReplaceAll(content, bare, "")
	}
	return content
}

func (a *Artifact) write(content string) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(a.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}
