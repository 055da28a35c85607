package plan

import (
	"fmt"

	"go.uber.org/zap"

	"backforge/internal/schema"
)

// Step is one unit of generation work against a single artifact.
type Step struct {
	PatternKey  string
	DisplayName string
	Kind        Kind
	Field       string
	First       bool
}

const (
	routePatternRoot = "javascript/express/routes"
	queryPatternRoot = "javascript/express/queries"
)

// RoutePatternFor returns the route pattern key for a classified kind.
func RoutePatternFor(kind Kind) string {
	return routePatternByKind[kind]
}

var routePatternByKind = map[Kind]string{
	KindGetAll:     routePatternRoot + "/get-users-auth",
	KindGetByID:    routePatternRoot + "/get-users-by-id-auth",
	KindGetByField: routePatternRoot + "/get-users-by-id-auth",
	KindCreate:     routePatternRoot + "/post-users-auth",
	KindUpdate:     routePatternRoot + "/put-users-auth",
	KindDelete:     routePatternRoot + "/delete-users-auth",
}

// PlanOperations builds route steps from requested operation phrases.
// Unclassifiable phrases are dropped with a warning and planning continues.
func PlanOperations(resource string, phrases []string, logger *zap.Logger) []Step {
	var steps []Step
	for _, phrase := range phrases {
		op, ok := Classify(phrase)
		if !ok {
			logger.Warn("operation phrase matches no known kind, dropping",
				zap.String("resource", resource),
				zap.String("phrase", phrase))
			continue
		}

		display := fmt.Sprintf("%s %s", op.Kind, resource)
		if op.Kind == KindGetByField {
			display = fmt.Sprintf("get %s by %s", resource, op.Field)
		}

		steps = append(steps, Step{
			PatternKey:  routePatternByKind[op.Kind],
			DisplayName: display,
			Kind:        op.Kind,
			Field:       op.Field,
			First:       len(steps) == 0,
		})
	}
	return steps
}

// PlanQueries builds query steps from a table definition. Foreign-key
// columns switch the retrieval steps to JOIN-aware variants and add one
// by-field lookup per relationship column.
func PlanQueries(resource, tableDef string) []Step {
	fks := schema.ForeignKeyColumns(tableDef)

	var steps []Step
	add := func(patternName, display string, kind Kind, field string) {
		steps = append(steps, Step{
			PatternKey:  queryPatternRoot + "/" + patternName,
			DisplayName: display,
			Kind:        kind,
			Field:       field,
			First:       len(steps) == 0,
		})
	}

	if len(fks) > 0 {
		add("get-with-joins", fmt.Sprintf("get all %s with joins", resource), KindGetAll, "")
		add("get-by-id-with-join", fmt.Sprintf("get %s by id with join", resource), KindGetByID, "")
		for _, fk := range fks {
			add("get-by-field-with-join",
				fmt.Sprintf("get %s by %s with join", resource, fk),
				KindGetByField, fk)
		}
	} else {
		add("get-all", fmt.Sprintf("get all %s", resource), KindGetAll, "")
		add("get-by-id", fmt.Sprintf("get %s by id", resource), KindGetByID, "")
	}

	add("create", fmt.Sprintf("create %s", resource), KindCreate, "")
	add("update", fmt.Sprintf("update %s", resource), KindUpdate, "")
	add("delete", fmt.Sprintf("delete %s", resource), KindDelete, "")

	return steps
}
