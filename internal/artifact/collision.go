package artifact

import "regexp"

var (
	functionDeclRe = regexp.MustCompile(`(?m)^\s*(?:async\s+)?function\s+(\w+)\s*\(`)
	routeDeclRe    = regexp.MustCompile(`router\.(get|post|put|delete|patch)\(\s*['"]([^'"]+)['"]`)
)

// DeclaredMembers lists the member signatures a fragment declares: function
// names plus "METHOD path" pairs for router registrations.
func DeclaredMembers(fragment string) []string {
	var members []string
	seen := make(map[string]bool)
	add := func(sig string) {
		if !seen[sig] {
			seen[sig] = true
			members = append(members, sig)
		}
	}

	for _, m := range functionDeclRe.FindAllStringSubmatch(fragment, -1) {
		add(m[1])
	}
	for _, m := range routeDeclRe.FindAllStringSubmatch(fragment, -1) {
		add(methodUpper(m[1]) + " " + m[2])
	}
	return members
}

// DetectCollisions returns the fragment's declared members that are already
// in the presence set. The model ignored the do-not-touch list for those.
func DetectCollisions(fragment string, presence *PresenceSet) []string {
	existing := make(map[string]bool)
	for _, m := range presence.Members() {
		existing[m] = true
	}

	var collisions []string
	for _, m := range DeclaredMembers(fragment) {
		if existing[m] {
			collisions = append(collisions, m)
		}
	}
	return collisions
}

func methodUpper(m string) string {
	switch m {
	case "get":
		return "GET"
	case "post":
		return "POST"
	case "put":
		return "PUT"
	case "delete":
		return "DELETE"
	case "patch":
		return "PATCH"
	}
	return m
}
