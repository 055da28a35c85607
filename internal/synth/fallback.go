package synth

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"backforge/internal/artifact"
	"backforge/internal/extract"
)

// fallback is the unstructured path: one generation call for the whole
// request, optionally guided by an AI-selected pattern, saved as a single
// artifact.
func (p *Pipeline) fallback(ctx context.Context, request string, opts Options) Result {
	prompt := fallbackPrompt(request)
	if opts.PatternMode && p.selector != nil {
		if key, ok := p.selector.Select(ctx, request); ok {
			if body, loaded := p.synth.patterns.Load(key); loaded {
				p.logger.Info("fallback guided by pattern", zap.String("pattern", key))
				prompt = fallbackPatternPrompt(request, body)
			}
		}
	}

	response, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		p.logger.Warn("fallback generation failed", zap.Error(err))
		return Result{FellBack: true}
	}

	result := extract.Extract(response)
	if !result.Found {
		p.logger.Warn("fallback produced no fragment")
		return Result{FellBack: true}
	}

	path := filepath.Join(p.synth.outRoot, "generated.js")
	art := artifact.New(path, "")
	if err := art.Seed(result.Code); err != nil {
		p.logger.Warn("fallback artifact write failed", zap.Error(err))
		return Result{FellBack: true}
	}

	notes := artifact.NewNotes(notesPath(path))
	if err := notes.Append("unstructured generation", result.Explanation); err != nil {
		p.logger.Warn("fallback notes write failed", zap.Error(err))
	}

	return Result{Artifacts: []string{path}, FellBack: true}
}
