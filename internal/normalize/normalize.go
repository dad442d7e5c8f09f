// Package normalize canonicalizes label text for comparison and checks
// copy-document text against the house capitalization and formatting rules.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var multiSpace = regexp.MustCompile(`\s+`)

// typographic variants folded to their plain equivalents before
// comparison. Case is preserved; case handling is the caller's concern.
var replacer = strings.NewReplacer(
	"“", `"`, "”", `"`, // curly double quotes
	"‘", "'", "’", "'", // curly single quotes
	"«", `"`, "»", `"`, // guillemets
	"–", "-", // en-dash
	"‐", "-", // unicode hyphen
	"ʼ", "'", // modifier apostrophe
	" ", " ", // no-break space
	" ", " ", // narrow no-break space
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
)

// Canonical normalizes text for comparison: NFC form, typographic
// variants folded, whitespace collapsed, leading/trailing space
// stripped. Case is preserved.
func Canonical(text string) string {
	if text == "" {
		return ""
	}
	s := norm.NFC.String(text)
	s = replacer.Replace(s)
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ForComparison is the case-insensitive form used by the fuzzy matcher.
func ForComparison(text string) string {
	return strings.ToLower(Canonical(text))
}
