package synth

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backforge/internal/artifact"
	"backforge/internal/llm"
	"backforge/internal/pattern"
	"backforge/internal/plan"
)

// Pipeline drives a whole request: decompose, then generate schema,
// database, seeds, queries, middleware, and routes. Resources are
// independent artifacts and run in parallel; steps within one artifact
// stay strictly sequential.
type Pipeline struct {
	synth       *Synthesizer
	decomposer  *plan.Decomposer
	selector    *pattern.Selector
	llm         llm.Client
	logger      *zap.Logger
	parallelism int
}

// Options controls a single pipeline execution.
type Options struct {
	// PatternMode routes fallback generation through AI pattern selection.
	PatternMode bool
}

// Result summarizes what one execution produced.
type Result struct {
	Artifacts []string
	FellBack  bool
}

// NewPipeline assembles a pipeline. selector may be nil; parallelism below
// one means sequential.
func NewPipeline(synth *Synthesizer, decomposer *plan.Decomposer, selector *pattern.Selector, client llm.Client, parallelism int, logger *zap.Logger) *Pipeline {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Pipeline{
		synth:       synth,
		decomposer:  decomposer,
		selector:    selector,
		llm:         client,
		logger:      logger,
		parallelism: parallelism,
	}
}

// Execute runs one request end to end. An undecomposable request falls back
// to unstructured single-shot generation instead of failing.
func (p *Pipeline) Execute(ctx context.Context, request string, opts Options) Result {
	decomposed, err := p.decomposer.Decompose(ctx, request)
	if err != nil {
		p.logger.Warn("decomposition failed, falling back", zap.Error(err))
	}
	if decomposed.Empty() {
		return p.fallback(ctx, request, opts)
	}

	var result Result
	resources := make([]string, len(decomposed.Resources))
	for i, r := range decomposed.Resources {
		resources[i] = r.Name
	}

	var schemaSQL string
	if len(resources) > 0 {
		var schemaPath string
		schemaSQL, schemaPath = p.synth.GenerateSchema(ctx, resources)
		if schemaSQL != "" {
			result.Artifacts = append(result.Artifacts, schemaPath)
		}
	}

	for _, path := range p.synth.GenerateDatabase(ctx, decomposed.Database) {
		result.Artifacts = append(result.Artifacts, path)
	}

	for _, path := range p.synth.GenerateSeeds(ctx, resources, schemaSQL) {
		result.Artifacts = append(result.Artifacts, path)
	}

	queryPaths := p.generateQueriesParallel(ctx, resources, schemaSQL)
	for _, path := range queryPaths {
		result.Artifacts = append(result.Artifacts, path)
	}

	for _, path := range p.synth.GenerateMiddleware(ctx, decomposed.Middleware) {
		result.Artifacts = append(result.Artifacts, path)
	}

	for _, r := range decomposed.Resources {
		var path string
		var presence *artifact.PresenceSet
		if queryPath, ok := queryPaths[r.Name]; ok {
			path, presence = p.synth.GenerateRoutesFromQueries(ctx, r.Name, queryPath)
		} else {
			path, presence = p.synth.GenerateRoutesFromOperations(ctx, r.Name, r.Operations)
		}
		if presence.Len() > 0 {
			result.Artifacts = append(result.Artifacts, path)
		}
	}

	return result
}

// generateQueriesParallel fans query generation out across resources. Each
// resource owns its artifact, so writes never race; the manifest serializes
// on its single connection.
func (p *Pipeline) generateQueriesParallel(ctx context.Context, resources []string, schemaSQL string) map[string]string {
	if schemaSQL == "" {
		return nil
	}

	var mu sync.Mutex
	merged := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)
	for _, resource := range resources {
		resource := resource
		g.Go(func() error {
			for name, path := range p.synth.GenerateQueries(gctx, []string{resource}, schemaSQL) {
				mu.Lock()
				merged[name] = path
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return merged
}
