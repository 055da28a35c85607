package plan

import (
	"strings"
)

// Kind is the canonical operation class a phrase maps to.
type Kind string

const (
	KindGetAll     Kind = "get-all"
	KindGetByID    Kind = "get-by-id"
	KindGetByField Kind = "get-by-field"
	KindCreate     Kind = "create"
	KindUpdate     Kind = "update"
	KindDelete     Kind = "delete"
)

// Operation is a classified phrase. Field is set only for by-field lookups.
type Operation struct {
	Kind   Kind
	Field  string
	Phrase string
}

// Classify maps a free-text operation phrase to a Kind. Precedence within
// retrieval phrasing: explicit "by id" first, then "by <field>", then the
// bare verb. "by" phrasing refines retrieval only; "update by id" is still
// an update.
func Classify(phrase string) (Operation, bool) {
	lower := strings.ToLower(strings.TrimSpace(phrase))
	op := Operation{Phrase: phrase}

	switch {
	case containsAny(lower, "create", "add", "new", "post", "insert"):
		op.Kind = KindCreate
	case containsAny(lower, "update", "edit", "modify", "put", "patch", "change"):
		op.Kind = KindUpdate
	case containsAny(lower, "delete", "remove", "destroy"):
		op.Kind = KindDelete
	case containsAny(lower, "get", "list", "fetch", "read", "show", "retrieve", "find", "view"):
		if hasWord(lower, "by") {
			field := fieldAfterBy(lower)
			if field == "id" {
				op.Kind = KindGetByID
			} else if field != "" {
				op.Kind = KindGetByField
				op.Field = field
			} else {
				op.Kind = KindGetAll
			}
		} else {
			op.Kind = KindGetAll
		}
	default:
		return Operation{}, false
	}

	return op, true
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if hasWord(s, w) {
			return true
		}
	}
	return false
}

// hasWord matches on word boundaries so "by" never matches inside
// "nearby" or "hobby".
func hasWord(s, word string) bool {
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '_')
	}) {
		if tok == word {
			return true
		}
	}
	return false
}

// fieldAfterBy joins the tokens after the first standalone "by" with
// underscores: "get users by category id" yields "category_id".
func fieldAfterBy(s string) string {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if tok == "by" && i+1 < len(tokens) {
			return strings.Join(tokens[i+1:], "_")
		}
	}
	return ""
}
