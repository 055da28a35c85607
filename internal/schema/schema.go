// Package schema locates table definitions inside generated SQL and reads
// the relationship facts the query planner needs.
package schema

import (
	"fmt"
	"regexp"
)

var foreignKeyRe = regexp.MustCompile(`(?i)(\w+)\s+(?:INTEGER|BIGINT)\s+REFERENCES`)

// ExtractTable returns the full CREATE TABLE statement for the named table,
// or ok=false when the schema has no such table. Matching is
// case-insensitive and tolerates quoted identifiers and IF NOT EXISTS.
func ExtractTable(schemaSQL, table string) (string, bool) {
	pattern := fmt.Sprintf(
		`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?"?%s"?\s*\(.*?\)\s*;`,
		regexp.QuoteMeta(table))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}
	match := re.FindString(schemaSQL)
	if match == "" {
		return "", false
	}
	return match, true
}

// ForeignKeyColumns returns the inline REFERENCES column names of a table
// definition, in declaration order, deduplicated.
func ForeignKeyColumns(tableDef string) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, m := range foreignKeyRe.FindAllStringSubmatch(tableDef, -1) {
		col := m[1]
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return columns
}

// HasForeignKeys reports whether a table definition declares any inline
// REFERENCES column.
func HasForeignKeys(tableDef string) bool {
	return foreignKeyRe.MatchString(tableDef)
}
