// Package board holds the pure board logic: status normalization, column
// reconciliation into kanban buckets, and the status suggestion merge.
// Nothing here touches the database or the network.
package board

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Display normalizes a status for on-screen comparison and display: trim,
// lower-case, then upper-case the first letter only. "APPLIED" -> "Applied",
// "in review" -> "In review". Deliberately weaker than per-word title case;
// call sites rely on the exact rule.
func Display(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Wire normalizes a status the way the legacy backend expected its enum
// codes: trim, upper-case, whitespace runs become underscores.
// "to apply" -> "TO_APPLY". Only the legacy request codec uses this; it is
// never the bucket-matching rule.
func Wire(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "_")
}

// Label turns a legacy enum code back into a human-readable label:
// "ONLINE_ASSESSMENT" -> "Online Assessment".
func Label(canonical string) string {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(canonical, "_", " ")))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Same reports whether two statuses belong to the same bucket:
// case-insensitive equality after trimming.
func Same(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
