package synth

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"backforge/internal/artifact"
	"backforge/internal/plan"
	"backforge/internal/schema"
)

// GenerateQueries builds one query module per resource, planned from the
// table definition found in schemaSQL. Resources whose table is absent from
// the schema are skipped. Returns resource name to artifact path for the
// modules that were produced.
func (s *Synthesizer) GenerateQueries(ctx context.Context, resources []string, schemaSQL string) map[string]string {
	produced := make(map[string]string)

	for _, resource := range resources {
		tableDef, ok := schema.ExtractTable(schemaSQL, resource)
		if !ok {
			s.logger.Warn("table not found in schema, skipping queries",
				zap.String("resource", resource))
			continue
		}

		steps := plan.PlanQueries(resource, tableDef)
		path := s.queryArtifactPath(resource, steps)
		art := artifact.New(path, "")
		notes := artifact.NewNotes(notesPath(path))

		synthSteps := make([]Step, 0, len(steps))
		for i, p := range steps {
			fn := queryFunctionName(resource, p)
			step := Step{
				PatternKey: p.PatternKey,
				Display:    p.DisplayName,
				Signature:  fn,
				Kind:       string(p.Kind),
				Field:      p.Field,
			}
			if i == 0 {
				step.Prompt = func(_ *artifact.PresenceSet, body string) string {
					return querySeedPrompt(resource, resource, fn, tableDef, body)
				}
			} else {
				step.Prompt = func(presence *artifact.PresenceSet, body string) string {
					return queryAppendPrompt(resource, resource, fn, tableDef, body, presence)
				}
			}
			synthSteps = append(synthSteps, step)
		}

		presence := s.Run(ctx, RunSpec{
			Resource:  resource,
			Artifact:  art,
			Notes:     notes,
			Steps:     synthSteps,
			SeedFirst: true,
		})

		if presence.Len() > 0 {
			produced[resource] = path
		}
	}

	return produced
}

// queryArtifactPath resolves where a resource's query module lives, from
// the placement metadata of the plan's first pattern.
func (s *Synthesizer) queryArtifactPath(resource string, steps []plan.Step) string {
	meta := s.placementMetadata(steps, "db/queries", "{resource}_queries.js")
	return filepath.Join(s.outRoot, meta.OutputDir, meta.FileName(singularize(resource)))
}

func notesPath(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return artifactPath[:len(artifactPath)-len(ext)] + "_notes.txt"
}
