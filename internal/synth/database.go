package synth

import (
	"context"
	"path/filepath"
	"strings"

	"backforge/internal/artifact"
)

const databasePatternRoot = "javascript/express/database"

// databasePatternFor maps a decomposed database concern to a pattern key
// and file stem.
func databasePatternFor(concern string) (key, name string) {
	switch {
	case strings.Contains(concern, "migrat"):
		return databasePatternRoot + "/migration", "migrate"
	case strings.Contains(concern, "pool"):
		return databasePatternRoot + "/pool", "pool"
	default:
		return databasePatternRoot + "/connection", "connection"
	}
}

// GenerateDatabase builds one setup module per decomposed database concern.
// Returns concern to artifact path for the modules that were produced.
func (s *Synthesizer) GenerateDatabase(ctx context.Context, concerns []string) map[string]string {
	produced := make(map[string]string)

	for _, concern := range concerns {
		key, name := databasePatternFor(concern)
		path := filepath.Join(s.outRoot, "db", name+".js")
		art := artifact.New(path, "")
		notes := artifact.NewNotes(notesPath(path))

		concern := concern
		presence := s.Run(ctx, RunSpec{
			Resource: concern,
			Artifact: art,
			Notes:    notes,
			Steps: []Step{{
				PatternKey: key,
				Display:    "database: " + concern,
				Signature:  name,
				Kind:       "database",
				Prompt: func(_ *artifact.PresenceSet, body string) string {
					return databasePrompt(concern, body)
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
