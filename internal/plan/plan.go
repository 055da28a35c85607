// Package plan turns a free-text build request into an ordered set of
// generation steps: one decomposition call to the model, then deterministic
// classification and step planning on top of the parsed result.
package plan

import (
	"regexp"
	"strings"
)

// Plan is the structured form of a build request.
type Plan struct {
	Resources  []ResourcePlan
	Middleware []string
	Database   []string
	Schema     []string
}

// ResourcePlan names one resource and the operation phrases requested for it.
type ResourcePlan struct {
	Name       string
	Operations []string
}

// Empty reports whether decomposition recovered nothing usable.
func (p *Plan) Empty() bool {
	return p == nil || (len(p.Resources) == 0 &&
		len(p.Middleware) == 0 &&
		len(p.Database) == 0 &&
		len(p.Schema) == 0)
}

var disallowedNameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// NormalizeResourceName canonicalizes a model-emitted resource name: leading
// separators and surrounding noise dropped, disallowed characters removed,
// lower-cased.
func NormalizeResourceName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "/ ")
	name = disallowedNameRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}
