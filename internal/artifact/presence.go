package artifact

import "strings"

// PresenceSet is the ordered list of member signatures already merged into
// an artifact. Every prompt restates it because the generator has no memory
// across calls; omitting it makes the model regenerate prior members.
type PresenceSet struct {
	members []string
}

// NewPresenceSet creates an empty presence set.
func NewPresenceSet() *PresenceSet {
	return &PresenceSet{}
}

// Add appends a member signature. Duplicates are kept out; the set mirrors
// what is actually in the artifact.
func (p *PresenceSet) Add(signature string) {
	for _, m := range p.members {
		if m == signature {
			return
		}
	}
	p.members = append(p.members, signature)
}

// Members returns the signatures in merge order.
func (p *PresenceSet) Members() []string {
	out := make([]string, len(p.members))
	copy(out, p.members)
	return out
}

// Len returns the number of merged members.
func (p *PresenceSet) Len() int {
	return len(p.members)
}

// Empty reports whether nothing has been merged yet.
func (p *PresenceSet) Empty() bool {
	return len(p.members) == 0
}

// String renders the set as a bulleted list for prompt embedding.
func (p *PresenceSet) String() string {
	if len(p.members) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, m := range p.members {
		b.WriteString("- ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
