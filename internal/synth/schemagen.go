package synth

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"backforge/internal/artifact"
)

const schemaPatternKey = "javascript/express/schema/table"

// GenerateSchema builds the SQL schema for the planned resources, one table
// per step, all accumulated into a single schema file. Each step's prompt
// carries the tables already defined so the model can declare relationship
// columns against them. Returns the combined SQL and its path.
func (s *Synthesizer) GenerateSchema(ctx context.Context, resources []string) (string, string) {
	path := filepath.Join(s.outRoot, "db", "schema.sql")
	art := artifact.New(path, "")
	art.CommentPrefix = "--"
	notes := artifact.NewNotes(filepath.Join(s.outRoot, "db", "schema_notes.txt"))

	steps := make([]Step, 0, len(resources))
	for _, resource := range resources {
		resource := resource
		steps = append(steps, Step{
			PatternKey: schemaPatternKey,
			Display:    "table " + resource,
			Signature:  resource,
			Kind:       "schema",
			Prompt: func(_ *artifact.PresenceSet, body string) string {
				existing, err := art.Read()
				if err != nil {
					existing = ""
				}
				return schemaPrompt(resource, body, existing)
			},
		})
	}

	presence := s.Run(ctx, RunSpec{
		Resource:  "schema",
		Artifact:  art,
		Notes:     notes,
		Steps:     steps,
		SeedFirst: true,
	})

	combined, err := art.Read()
	if err != nil {
		s.logger.Warn("schema read-back failed", zap.Error(err))
		return "", path
	}
	if presence.Empty() {
		return "", path
	}
	return combined, path
}
