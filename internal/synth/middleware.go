package synth

import (
	"context"
	"path/filepath"
	"strings"

	"backforge/internal/artifact"
)

const middlewarePatternRoot = "javascript/express/middleware"

// middlewarePatternFor maps a decomposed middleware concern to a pattern
// key and file stem.
func middlewarePatternFor(concern string) (key, name string) {
	switch {
	case strings.Contains(concern, "valid"):
		return middlewarePatternRoot + "/validation", "validation"
	case strings.Contains(concern, "error"):
		return middlewarePatternRoot + "/error-handler", "errorHandler"
	default:
		return middlewarePatternRoot + "/auth", "auth"
	}
}

// GenerateMiddleware builds one middleware module per decomposed concern.
// Returns concern to artifact path for the modules that were produced.
func (s *Synthesizer) GenerateMiddleware(ctx context.Context, concerns []string) map[string]string {
	produced := make(map[string]string)

	for _, concern := range concerns {
		key, name := middlewarePatternFor(concern)
		path := filepath.Join(s.outRoot, "middleware", name+".js")
		art := artifact.New(path, "")
		notes := artifact.NewNotes(notesPath(path))

		concern := concern
		presence := s.Run(ctx, RunSpec{
			Resource: concern,
			Artifact: art,
			Notes:    notes,
			Steps: []Step{{
				PatternKey: key,
				Display:    "middleware: " + concern,
				Signature:  name,
				Kind:       "middleware",
				Prompt: func(_ *artifact.PresenceSet, body string) string {
					return middlewarePrompt(concern, body)
				},
			}},
			SeedFirst: true,
		})

		if presence.Len() > 0 {
			produced[concern] = path
		}
	}

	return produced
}
