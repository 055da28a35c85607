package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Notes is the sibling file collecting the explanation text each step
// produced, timestamped and separated by banners.
type Notes struct {
	Path string
	Now  func() time.Time
}

// NewNotes creates a notes handle next to an artifact.
func NewNotes(path string) *Notes {
	return &Notes{Path: path, Now: time.Now}
}

// Append records one explanation. The file is created on first use; later
// entries are separated by a banner.
func (n *Notes) Append(title, explanation string) error {
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(n.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	f, err := os.OpenFile(n.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open notes file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s | %s\n", n.Now().Format(timestampFormat), title)
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")
	b.WriteString(explanation)
	b.WriteString("\n\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append notes: %w", err)
	}
	return nil
}
