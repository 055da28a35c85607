package synth

import (
	"strings"
	"unicode"

	"backforge/internal/plan"
)

// Generated member names follow the naming conventions route discovery
// classifies by; a name that drifts from the convention produces no route.

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// singularize handles the plural forms resource names actually take:
// "categories" to "category", "widgets" to "widget". "ss" endings stay.
func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s"):
		return s[:len(s)-1]
	}
	return s
}

// pascalField converts a snake_case column name to PascalCase:
// "category_id" to "CategoryId".
func pascalField(field string) string {
	parts := strings.Split(field, "_")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

// snakeField converts a camel or Pascal identifier segment back to
// snake_case: "CategoryId" to "category_id".
func snakeField(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// queryFunctionName is the canonical query member name for a planned step:
// getWidgets, getWidgetById, getWidgetsByCategoryId, createWidget and so
// on, with a WithDetails suffix on JOIN-aware retrieval variants.
func queryFunctionName(resource string, step plan.Step) string {
	singular := capitalize(singularize(resource))
	plural := capitalize(resource)
	withJoin := strings.Contains(step.PatternKey, "with-join")

	var name string
	switch step.Kind {
	case plan.KindGetAll:
		name = "get" + plural
	case plan.KindGetByID:
		name = "get" + singular + "ById"
	case plan.KindGetByField:
		name = "get" + plural + "By" + pascalField(step.Field)
	case plan.KindCreate:
		return "create" + singular
	case plan.KindUpdate:
		return "update" + singular
	case plan.KindDelete:
		return "delete" + singular
	default:
		return ""
	}

	if withJoin {
		name += "WithDetails"
	}
	return name
}
