package synth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"backforge/internal/artifact"
	"backforge/internal/plan"
)

const routerTerminator = "module.exports = router;"

var queryFunctionRe = regexp.MustCompile(`(?m)^\s*(?:async\s+)?function\s+(\w+)\s*\(`)

// Route is one Express registration derived from a query member name.
type Route struct {
	Method string
	Path   string
	Func   string
	Kind   plan.Kind
	Field  string
}

// GenerateRoutesFromOperations builds a router file for a resource from the
// requested operation phrases. The first step's generation call produces the
// whole file including boilerplate; later steps append one route each.
func (s *Synthesizer) GenerateRoutesFromOperations(ctx context.Context, resource string, phrases []string) (string, *artifact.PresenceSet) {
	steps := plan.PlanOperations(resource, phrases, s.logger)
	path := s.routeArtifactPath(resource, steps)
	art := artifact.New(path, routerTerminator)
	notes := artifact.NewNotes(notesPath(path))

	synthSteps := make([]Step, 0, len(steps))
	for _, p := range steps {
		p := p
		step := Step{
			PatternKey: p.PatternKey,
			Display:    p.DisplayName,
			Signature:  routeSignature(resource, p.Kind, p.Field),
			Kind:       string(p.Kind),
			Field:      p.Field,
		}
		if p.First {
			step.Prompt = func(_ *artifact.PresenceSet, body string) string {
				return routeSeedPrompt(resource, p.DisplayName, body)
			}
		} else {
			step.Prompt = func(presence *artifact.PresenceSet, body string) string {
				return routeAppendPrompt(resource, p.DisplayName, body, presence)
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
	return path, presence
}

// GenerateRoutesFromQueries builds a router file from the members of a
// completed query module: the plan comes from the artifact's surface, not
// from the original request. The boilerplate is written deterministically;
// each discovered route is then generated as an append step.
func (s *Synthesizer) GenerateRoutesFromQueries(ctx context.Context, resource, queryPath string) (string, *artifact.PresenceSet) {
	members := s.discoverQueryMembers(queryPath)

	var routes []Route
	for _, member := range members {
		route, ok := mapQueryToRoute(member, resource)
		if !ok {
			s.logger.Debug("query member matches no route convention, ignoring",
				zap.String("member", member))
			continue
		}
		routes = append(routes, route)
	}

	path := s.routeArtifactPath(resource, nil)
	art := artifact.New(path, routerTerminator)
	notes := artifact.NewNotes(notesPath(path))

	if len(routes) > 0 {
		if err := art.Seed(routeBoilerplate(resource, queryPath, path)); err != nil {
			s.logger.Warn("route boilerplate write failed",
				zap.String("resource", resource), zap.Error(err))
			return path, artifact.NewPresenceSet()
		}
		s.clearManifest(path)
	}

	synthSteps := make([]Step, 0, len(routes))
	for _, r := range routes {
		r := r
		display := fmt.Sprintf("%s %s calling %s", r.Method, r.Path, r.Func)
		synthSteps = append(synthSteps, Step{
			PatternKey: plan.RoutePatternFor(r.Kind),
			Display:    display,
			Signature:  r.Method + " " + r.Path,
			Kind:       string(r.Kind),
			Field:      r.Field,
			Prompt: func(presence *artifact.PresenceSet, body string) string {
				return routeAppendPrompt(resource, display, body, presence)
			},
		})
	}

	presence := s.Run(ctx, RunSpec{
		Resource: resource,
		Artifact: art,
		Notes:    notes,
		Steps:    synthSteps,
	})
	return path, presence
}

// routeArtifactPath resolves where a resource's router file lives.
func (s *Synthesizer) routeArtifactPath(resource string, steps []plan.Step) string {
	meta := s.placementMetadata(steps, "routes", "{resource}.js")
	return filepath.Join(s.outRoot, meta.OutputDir, meta.FileName(resource))
}

// discoverQueryMembers prefers the manifest record of the query artifact and
// falls back to a lexical scan of the file when the manifest has nothing.
func (s *Synthesizer) discoverQueryMembers(queryPath string) []string {
	if s.manifest != nil {
		recorded, err := s.manifest.Members(queryPath)
		if err != nil {
			s.logger.Warn("manifest read failed, falling back to lexical scan",
				zap.Error(err))
		} else if len(recorded) > 0 {
			names := make([]string, len(recorded))
			for i, m := range recorded {
				names[i] = m.Name
			}
			return names
		}
	}

	data, err := os.ReadFile(queryPath)
	if err != nil {
		s.logger.Warn("query artifact unreadable",
			zap.String("path", queryPath), zap.Error(err))
		return nil
	}

	var names []string
	for _, m := range queryFunctionRe.FindAllStringSubmatch(string(data), -1) {
		names = append(names, m[1])
	}
	return names
}

// mapQueryToRoute classifies a query function name by naming convention.
// The WithDetails suffix marks a JOIN variant and does not change the route
// shape. Names matching no convention map to nothing.
func mapQueryToRoute(member, resource string) (Route, bool) {
	singular := capitalize(singularize(resource))
	plural := capitalize(resource)
	base := strings.TrimSuffix(member, "WithDetails")

	switch {
	case base == "create"+singular:
		return Route{Method: "POST", Path: "/" + resource, Func: member, Kind: plan.KindCreate}, true
	case base == "update"+singular:
		return Route{Method: "PUT", Path: "/" + resource + "/:id", Func: member, Kind: plan.KindUpdate}, true
	case base == "delete"+singular:
		return Route{Method: "DELETE", Path: "/" + resource + "/:id", Func: member, Kind: plan.KindDelete}, true
	case base == "get"+singular+"ById":
		return Route{Method: "GET", Path: "/" + resource + "/:id", Func: member, Kind: plan.KindGetByID}, true
	case base == "get"+plural:
		return Route{Method: "GET", Path: "/" + resource, Func: member, Kind: plan.KindGetAll}, true
	case strings.HasPrefix(base, "get"+plural+"By"):
		field := snakeField(strings.TrimPrefix(base, "get"+plural+"By"))
		if field == "" {
			return Route{}, false
		}
		return Route{
			Method: "GET",
			Path:   "/" + resource + "/by-" + field + "/:value",
			Func:   member,
			Kind:   plan.KindGetByField,
			Field:  field,
		}, true
	}
	return Route{}, false
}

// routeBoilerplate is the deterministic router file header: requires, the
// query module import, and the export terminator.
func routeBoilerplate(resource, queryPath, routePath string) string {
	rel, err := filepath.Rel(filepath.Dir(routePath), queryPath)
	if err != nil {
		rel = queryPath
	}
	importPath := strings.TrimSuffix(filepath.ToSlash(rel), ".js")
	if !strings.HasPrefix(importPath, ".") {
		importPath = "./" + importPath
	}

	return fmt.Sprintf(`const express = require('express');
const router = express.Router();
const %sQueries = require('%s');

%s`, singularize(resource), importPath, routerTerminator)
}

func routeSignature(resource string, kind plan.Kind, field string) string {
	switch kind {
	case plan.KindGetAll:
		return "GET /" + resource
	case plan.KindGetByID:
		return "GET /" + resource + "/:id"
	case plan.KindGetByField:
		return "GET /" + resource + "/by-" + field + "/:value"
	case plan.KindCreate:
		return "POST /" + resource
	case plan.KindUpdate:
		return "PUT /" + resource + "/:id"
	case plan.KindDelete:
		return "DELETE /" + resource + "/:id"
	}
	return string(kind) + " /" + resource
}
