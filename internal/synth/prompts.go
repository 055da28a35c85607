package synth

import (
	"fmt"

	"backforge/internal/artifact"
)

// Prompt construction. Every append prompt restates the presence set with an
// explicit do-not-touch instruction; the model has no memory between calls
// and will regenerate prior members if the prompt does not list them.

func routeAppendPrompt(resource, display, patternBody string, presence *artifact.PresenceSet) string {
	return fmt.Sprintf(`You are adding ONE route to an existing Express router file for the "%s" resource.

Routes already present (do NOT regenerate, redeclare, or modify them):
%s

Reference pattern to adapt:
%s

Task: generate ONLY the new route handler for "%s".
Rules:
- Output exactly one code block containing only the new router registration.
- No require/import statements, no router creation, no module.exports.
- Do not repeat any existing route.
- Adapt the pattern's paths and names to the "%s" resource.`,
		resource, presence.String(), patternBody, display, resource)
}

func routeSeedPrompt(resource, display, patternBody string) string {
	return fmt.Sprintf(`You are creating a new Express router file for the "%s" resource.

Reference pattern to adapt:
%s

Task: generate a complete router file whose only route is "%s".
Rules:
- Output exactly one code block.
- Include the require statements, router creation, the single route, and "module.exports = router;" at the end.
- Adapt the pattern's paths and names to the "%s" resource.`,
		resource, patternBody, display, resource)
}

func queryAppendPrompt(resource, table, functionName, tableDef, patternBody string, presence *artifact.PresenceSet) string {
	return fmt.Sprintf(`You are adding ONE query function to an existing database query module for the "%s" resource.

Functions already present (do NOT regenerate, redeclare, or modify them):
%s

Table definition (use these exact column names):
%s

Reference pattern to adapt:
%s

Task: generate ONLY a new async function named exactly "%s" for the "%s" table.
Rules:
- Output exactly one code block containing only the new function.
- No require/import statements, no module.exports.
- Do not repeat any existing function.
- Column names must match the table definition exactly.`,
		resource, presence.String(), tableDef, patternBody, functionName, table)
}

func querySeedPrompt(resource, table, functionName, tableDef, patternBody string) string {
	return fmt.Sprintf(`You are creating a new database query module for the "%s" resource.

Table definition (use these exact column names):
%s

Reference pattern to adapt:
%s

Task: generate a complete query module whose only function is an async function named exactly "%s" for the "%s" table.
Rules:
- Output exactly one code block.
- Include the database connection require at the top.
- Export the function with "module.exports".
- Column names must match the table definition exactly.`,
		resource, tableDef, patternBody, functionName, table)
}

func middlewarePrompt(concern, patternBody string) string {
	return fmt.Sprintf(`You are creating an Express middleware module for this concern: %s.

Reference pattern to adapt:
%s

Task: generate a complete middleware file.
Rules:
- Output exactly one code block.
- Include requires and a "module.exports" at the end.
- Keep the middleware focused on the stated concern only.`,
		concern, patternBody)
}

func databasePrompt(concern, patternBody string) string {
	return fmt.Sprintf(`You are creating a database setup module for this concern: %s.

Reference pattern to adapt:
%s

Task: generate a complete module.
Rules:
- Output exactly one code block.
- Include requires and export the connection with "module.exports".`,
		concern, patternBody)
}

func schemaPrompt(resource, patternBody, existingSchema string) string {
	existing := "(no tables defined yet)"
	if existingSchema != "" {
		existing = existingSchema
	}
	return fmt.Sprintf(`You are adding a table definition for the "%s" resource to a SQL schema.

Tables already defined (do NOT redefine them, but reference their columns for foreign keys where the domain implies a relationship):
%s

Reference pattern to adapt:
%s

Task: generate ONLY the CREATE TABLE statement for "%s".
Rules:
- Output exactly one code block containing one CREATE TABLE IF NOT EXISTS statement ending with a semicolon.
- Use an INTEGER PRIMARY KEY AUTOINCREMENT id column.
- Declare relationship columns as "<name>_id INTEGER REFERENCES <table>(id)".`,
		resource, existing, patternBody, resource)
}

func seedDataPrompt(resource, tableDef, patternBody string) string {
	return fmt.Sprintf(`You are creating a seed data module for the "%s" table.

Table definition (use these exact column names):
%s

Reference pattern to adapt:
%s

Task: generate a complete seed module that inserts a few realistic rows.
Rules:
- Output exactly one code block.
- Export an async "seed%s" function with "module.exports".
- Column names must match the table definition exactly.`,
		resource, tableDef, patternBody, capitalize(resource))
}

func fallbackPrompt(request string) string {
	return fmt.Sprintf(`Generate the code this request asks for:

%s

Output exactly one code block with the complete code, followed by a short explanation.`,
		request)
}

func fallbackPatternPrompt(request, patternBody string) string {
	return fmt.Sprintf(`Generate the code this request asks for:

%s

Adapt this reference pattern:
%s

Output exactly one code block with the complete code, followed by a short explanation.`,
		request, patternBody)
}
