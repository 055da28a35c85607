// Package synth is the synthesis engine: it walks planned generation steps,
// calls the model once per step, and merges extracted fragments into
// artifacts one member at a time. Nothing here is fatal; a failed step is a
// skipped step and the artifact stays well-formed.
package synth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backforge/internal/artifact"
	"backforge/internal/extract"
	"backforge/internal/llm"
	"backforge/internal/pattern"
	"backforge/internal/store"
)

// Step is one generation unit the synthesizer executes. Prompt builds the
// step's full prompt from the current presence set and the loaded pattern
// body; Signature is the member name recorded after a successful merge.
type Step struct {
	PatternKey string
	Display    string
	Signature  string
	Kind       string
	Field      string
	Prompt     func(presence *artifact.PresenceSet, patternBody string) string
}

// RunSpec describes one artifact's worth of steps. SeedFirst makes the first
// successful fragment seed the artifact instead of appending; callers that
// write deterministic boilerplate beforehand leave it false.
type RunSpec struct {
	Resource  string
	Artifact  *artifact.Artifact
	Notes     *artifact.Notes
	Steps     []Step
	SeedFirst bool
}

// Synthesizer runs generation steps against artifacts under one output
// root.
type Synthesizer struct {
	llm      llm.Client
	patterns *pattern.Store
	manifest *store.ManifestStore
	outRoot  string
	logger   *zap.Logger
	runID    string
	now      func() time.Time
}

// New creates a synthesizer writing artifacts under outRoot. manifest may
// be nil when member recording is not wanted.
func New(client llm.Client, patterns *pattern.Store, manifest *store.ManifestStore, outRoot string, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		llm:      client,
		patterns: patterns,
		manifest: manifest,
		outRoot:  outRoot,
		logger:   logger,
		runID:    uuid.NewString(),
		now:      time.Now,
	}
}

// RunID identifies this synthesizer's run in the manifest.
func (s *Synthesizer) RunID() string {
	return s.runID
}

// Run executes the steps in order and returns the presence set of merged
// members. Steps are strictly sequential; each prompt depends on the
// artifact state the previous step left on disk. Per-step failures are
// logged and skipped, never propagated.
func (s *Synthesizer) Run(ctx context.Context, spec RunSpec) *artifact.PresenceSet {
	presence := artifact.NewPresenceSet()

	for _, step := range spec.Steps {
		if ctx.Err() != nil {
			s.logger.Warn("run cancelled, finalizing artifact",
				zap.String("resource", spec.Resource))
			break
		}

		patternBody, ok := s.patterns.Load(step.PatternKey)
		if !ok {
			s.logger.Warn("pattern not found, skipping step",
				zap.String("pattern", step.PatternKey),
				zap.String("step", step.Display))
			continue
		}

		prompt := step.Prompt(presence, patternBody)
		response, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("generation failed, skipping step",
				zap.String("step", step.Display),
				zap.Error(err))
			continue
		}

		result := extract.Extract(response)
		if !result.Found {
			s.logger.Warn("no fragment in model output, skipping step",
				zap.String("step", step.Display))
			continue
		}

		if collisions := artifact.DetectCollisions(result.Code, presence); len(collisions) > 0 {
			s.logger.Warn("fragment redeclares existing members",
				zap.String("step", step.Display),
				zap.Strings("members", collisions))
		}

		if presence.Empty() && spec.SeedFirst {
			err = spec.Artifact.Seed(result.Code)
			if err == nil {
				s.clearManifest(spec.Artifact.Path)
			}
		} else {
			err = spec.Artifact.Append(result.Code)
		}
		if err != nil {
			s.logger.Warn("artifact write failed, skipping step",
				zap.String("step", step.Display),
				zap.Error(err))
			continue
		}

		presence.Add(step.Signature)
		s.recordMember(spec.Artifact.Path, step)
		s.appendNotes(spec.Notes, step.Display, result.Explanation)

		s.logger.Info("member merged",
			zap.String("resource", spec.Resource),
			zap.String("member", step.Signature),
			zap.Int("presence", presence.Len()))
	}

	if err := spec.Artifact.Finalize(); err != nil {
		s.logger.Warn("finalize failed", zap.String("path", spec.Artifact.Path), zap.Error(err))
	}

	return presence
}

// clearManifest drops an artifact's manifest rows when the file is
// re-seeded, so discovery never sees members from a previous run.
func (s *Synthesizer) clearManifest(artifactPath string) {
	if s.manifest == nil {
		return
	}
	if err := s.manifest.ClearArtifact(artifactPath); err != nil {
		s.logger.Warn("manifest clear failed", zap.Error(err))
	}
}

func (s *Synthesizer) recordMember(artifactPath string, step Step) {
	if s.manifest == nil {
		return
	}
	err := s.manifest.RecordMember(store.Member{
		Artifact: artifactPath,
		Name:     step.Signature,
		Kind:     step.Kind,
		Field:    step.Field,
		RunID:    s.runID,
	})
	if err != nil {
		s.logger.Warn("manifest record failed", zap.Error(err))
	}
}

func (s *Synthesizer) appendNotes(notes *artifact.Notes, title, explanation string) {
	if notes == nil {
		return
	}
	if err := notes.Append(title, explanation); err != nil {
		s.logger.Warn("notes append failed", zap.Error(err))
	}
}
