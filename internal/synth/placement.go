package synth

import (
	"backforge/internal/pattern"
	"backforge/internal/plan"
)

// placementMetadata resolves where a category's artifacts belong from the
// first planned pattern's declarations, with category defaults when the
// pattern is missing or silent.
func (s *Synthesizer) placementMetadata(steps []plan.Step, defaultDir, defaultNaming string) pattern.Metadata {
	meta := pattern.Metadata{OutputDir: defaultDir, FileNaming: defaultNaming}
	if len(steps) == 0 {
		return meta
	}
	loaded, ok := s.patterns.Metadata(steps[0].PatternKey)
	if !ok {
		return meta
	}
	defaults := pattern.DefaultMetadata()
	if loaded.OutputDir != defaults.OutputDir {
		meta.OutputDir = loaded.OutputDir
	}
	if loaded.FileNaming != defaults.FileNaming {
		meta.FileNaming = loaded.FileNaming
	}
	return meta
}
