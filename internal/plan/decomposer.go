package plan

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"backforge/internal/llm"
)

// Decomposer turns a free-text request into a Plan with exactly one
// generation call.
type Decomposer struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewDecomposer creates a request decomposer.
func NewDecomposer(client llm.Client, logger *zap.Logger) *Decomposer {
	return &Decomposer{llm: client, logger: logger}
}

const decomposePromptTemplate = `Analyze this API build request and extract ONLY what it literally states. Do not infer, expand, or add anything the request does not say.

Request: %s

Respond in exactly this format:

RESOURCES:
- resource_name: operation1, operation2, ...

MIDDLEWARE:
- middleware_concern

DATABASE:
- database_concern

SCHEMA:
- schema_concern

Rules:
- Resource names are lowercase plural nouns.
- Operations are short phrases like "get all", "get by id", "create", "update", "delete".
- If a section has no items, leave it empty.
- Output nothing outside these sections.`

// Decompose issues one generation call and parses the reply. A nil Plan with
// a nil error means the output was unusable and the caller should fall back
// to unstructured generation.
func (d *Decomposer) Decompose(ctx context.Context, request string) (*Plan, error) {
	prompt := fmt.Sprintf(decomposePromptTemplate, request)

	response, err := d.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("decomposition call failed: %w", err)
	}

	p := ParseResponse(response)
	if p.Empty() {
		d.logger.Warn("decomposition produced no resources or concerns",
			zap.String("request", request))
		return nil, nil
	}

	d.logger.Info("request decomposed",
		zap.Int("resources", len(p.Resources)),
		zap.Int("middleware", len(p.Middleware)),
		zap.Int("database", len(p.Database)),
		zap.Int("schema", len(p.Schema)))
	return p, nil
}

type section int

const (
	sectionNone section = iota
	sectionResources
	sectionMiddleware
	sectionDatabase
	sectionSchema
)

// ParseResponse scans the model reply line by line, switching sections on
// header lines and accumulating list items under the active section.
func ParseResponse(response string) *Plan {
	p := &Plan{}
	current := sectionNone

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.Contains(trimmed, "RESOURCES:") || strings.Contains(trimmed, "RESOURCE:"):
			current = sectionResources
			continue
		case strings.Contains(trimmed, "MIDDLEWARE:"):
			current = sectionMiddleware
			continue
		case strings.Contains(trimmed, "DATABASE:"):
			current = sectionDatabase
			continue
		case strings.Contains(trimmed, "SCHEMA:"):
			current = sectionSchema
			continue
		}

		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		if item == "" {
			continue
		}

		switch current {
		case sectionResources:
			name, ops, ok := strings.Cut(item, ":")
			if !ok {
				continue
			}
			resource := NormalizeResourceName(name)
			if resource == "" {
				continue
			}
			var phrases []string
			for _, op := range strings.Split(ops, ",") {
				op = strings.TrimSpace(op)
				if op != "" {
					phrases = append(phrases, op)
				}
			}
			// A resource with no operations is invalid and dropped.
			if len(phrases) == 0 {
				continue
			}
			p.Resources = append(p.Resources, ResourcePlan{Name: resource, Operations: phrases})
		case sectionMiddleware:
			p.Middleware = append(p.Middleware, strings.ToLower(item))
		case sectionDatabase:
			p.Database = append(p.Database, strings.ToLower(item))
		case sectionSchema:
			p.Schema = append(p.Schema, strings.ToLower(item))
		}
	}

	return p
}
