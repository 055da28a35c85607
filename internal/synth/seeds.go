package synth

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"backforge/internal/artifact"
	"backforge/internal/schema"
)

const seedPatternKey = "javascript/express/seeds/insert"

// GenerateSeeds builds one seed module per resource whose table exists in
// the schema, plus a deterministic runner that executes them in order.
// Returns resource to artifact path for the modules that were produced.
func (s *Synthesizer) GenerateSeeds(ctx context.Context, resources []string, schemaSQL string) map[string]string {
	produced := make(map[string]string)

	for _, resource := range resources {
		tableDef, ok := schema.ExtractTable(schemaSQL, resource)
		if !ok {
			s.logger.Warn("table not found in schema, skipping seeds",
				zap.String("resource", resource))
			continue
		}

		path := filepath.Join(s.outRoot, "db", "seeds", resource+".js")
		art := artifact.New(path, "")
		notes := artifact.NewNotes(notesPath(path))

		resource := resource
		presence := s.Run(ctx, RunSpec{
			Resource: resource,
			Artifact: art,
			Notes:    notes,
			Steps: []Step{{
				PatternKey: seedPatternKey,
				Display:    "seed data for " + resource,
				Signature:  "seed" + capitalize(resource),
				Kind:       "seed",
				Prompt: func(_ *artifact.PresenceSet, body string) string {
					return seedDataPrompt(resource, tableDef, body)
				},
			}},
			SeedFirst: true,
		})

		if presence.Len() > 0 {
			produced[resource] = path
		}
	}

	if len(produced) > 0 {
		if err := s.writeSeedRunner(produced); err != nil {
			s.logger.Warn("seed runner write failed", zap.Error(err))
		}
	}

	return produced
}

// writeSeedRunner emits the index module that runs every seed in a stable
// order. Pure boilerplate, written without a generation call.
func (s *Synthesizer) writeSeedRunner(produced map[string]string) error {
	resources := make([]string, 0, len(produced))
	for r := range produced {
		resources = append(resources, r)
	}
	sort.Strings(resources)

	var requires, calls strings.Builder
	for _, r := range resources {
		fn := "seed" + capitalize(r)
		fmt.Fprintf(&requires, "const { %s } = require('./%s');\n", fn, r)
		fmt.Fprintf(&calls, "  await %s();\n", fn)
	}

	content := fmt.Sprintf(`%s
async function seedAll() {
%s}

seedAll()
  .then(() => process.exit(0))
  .catch((err) => {
    console.error(err);
    process.exit(1);
  });
`, requires.String(), calls.String())

	runner := artifact.New(filepath.Join(s.outRoot, "db", "seeds", "index.js"), "")
	return runner.Seed(content)
}
