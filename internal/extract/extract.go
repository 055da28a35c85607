// Package extract pulls code fragments out of raw model responses. Models
// wrap code in markdown fences and pad it with prose; downstream stages only
// ever see the cleaned fragment.
package extract

import (
	"regexp"
	"strings"
)

var (
	fenceRe    = regexp.MustCompile("(?s)```[a-zA-Z0-9+-]*\r?\n(.*?)```")
	blockDocRe = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Result is the outcome of fragment extraction. A missing fragment is a
// valid result, not an error.
type Result struct {
	Code        string
	Found       bool
	Explanation string
}

// Extract returns the first fenced code block from a raw model response.
// The block is taken verbatim, then block doc comments are stripped and runs
// of blank lines collapsed. Explanation is the prose after the last fence,
// or the whole trimmed input when no fence exists.
func Extract(raw string) Result {
	matches := fenceRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return Result{Explanation: strings.TrimSpace(raw)}
	}

	first := matches[0]
	code := Clean(raw[first[2]:first[3]])

	last := matches[len(matches)-1]
	explanation := strings.TrimSpace(raw[last[1]:])

	return Result{
		Code:        code,
		Found:       code != "",
		Explanation: explanation,
	}
}

// Clean strips block doc comments and collapses runs of three or more
// newlines down to one blank line.
func Clean(code string) string {
	code = blockDocRe.ReplaceAllString(code, "")
	code = blankRunRe.ReplaceAllString(code, "\n\n")
	return strings.TrimSpace(code)
}
