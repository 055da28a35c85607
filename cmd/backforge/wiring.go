package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"backforge/internal/config"
	"backforge/internal/llm"
	"backforge/internal/pattern"
	"backforge/internal/plan"
	"backforge/internal/store"
	"backforge/internal/synth"
)

// session holds one assembled engine and its owned resources.
type session struct {
	cfg      *config.Config
	pipeline *synth.Pipeline
	patterns *pattern.Store
	manifest *store.ManifestStore
}

func (s *session) Close() {
	if s.patterns != nil {
		_ = s.patterns.Close()
	}
	if s.manifest != nil {
		_ = s.manifest.Close()
	}
}

// newSession loads config, resolves flag overrides, and wires the pipeline.
func newSession(ctx context.Context) (*session, error) {
	stateDir := filepath.Join(workspace, ".backforge")

	path := configPath
	if path == "" {
		path = filepath.Join(stateDir, "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if provider != "" {
		cfg.LLM.Provider = provider
	}
	if model != "" {
		cfg.LLM.Model = model
	}
	if timeout > 0 {
		cfg.LLM.Timeout = timeout.String()
	}
	if patternsDir != "" {
		cfg.Patterns.Root = patternsDir
	}
	if outputDir != "" {
		cfg.Output.Root = outputDir
	}

	client, err := llm.NewClient(ctx, llm.Options{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		Endpoint: cfg.LLM.Endpoint,
		Timeout:  cfg.LLMTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	patterns, err := pattern.NewStore(resolvePath(cfg.Patterns.Root), cfg.Patterns.Extension, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern store: %w", err)
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		patterns.Close()
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	manifest, err := store.OpenManifest(filepath.Join(stateDir, "manifest.db"))
	if err != nil {
		patterns.Close()
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	synthesizer := synth.New(client, patterns, manifest, resolvePath(cfg.Output.Root), logger)
	decomposer := plan.NewDecomposer(client, logger)
	selector := pattern.NewSelector(client, patterns, logger)
	pipeline := synth.NewPipeline(synthesizer, decomposer, selector, client, cfg.Generation.Parallelism, logger)

	return &session{
		cfg:      cfg,
		pipeline: pipeline,
		patterns: patterns,
		manifest: manifest,
	}, nil
}

// resolvePath anchors relative config paths at the workspace.
func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}
