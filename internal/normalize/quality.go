package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
)

// Category selects which capitalization rule applies to a field.
type Category int

const (
	// CategoryRegular fields must be entirely lowercase except acronyms.
	CategoryRegular Category = iota
	// CategoryExempt fields keep their authored case (addresses,
	// countries of origin, fill weights).
	CategoryExempt
	// CategoryINCI fields follow INCI ingredient capitalization.
	CategoryINCI
)

// Patterns that indicate internal production notes rather than label copy.
// Matched case-insensitively against the whole field value.
var instructionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^yes\s*[-–—]`),
	regexp.MustCompile(`(?i)^no\s*[-–—]`),
	regexp.MustCompile(`(?i)\bTBD\b`),
	regexp.MustCompile(`(?i)\bTBC\b`),
	regexp.MustCompile(`(?i)\bTODO\b`),
	regexp.MustCompile(`(?i)\bXXX+\b`),
	regexp.MustCompile(`(?i)\bPLACEHOLDER\b`),
	regexp.MustCompile(`(?i)\bpending\b`),
	regexp.MustCompile(`(?i)\bPO\b`),
	regexp.MustCompile(`(?i)\bfirst\s+PO\b`),
	regexp.MustCompile(`(?i)\bproduction\b`),
	regexp.MustCompile(`(?i)if\s+it\s+can\s+fit`),
	regexp.MustCompile(`(?i)need\s+to\s+wait`),
	regexp.MustCompile(`(?i)waiting\s+for`),
	regexp.MustCompile(`(?i)once\s+confirmed`),
	regexp.MustCompile(`(?i)\(see\s+attached\)`),
	regexp.MustCompile(`(?i)\(optional\)`),
	regexp.MustCompile(`(?i)\b(?:ask|check\s+with|confirm\s+with)\b`),
	regexp.MustCompile(`\?\s*$`),
}

// Bare placeholder values that must never reach a label.
var placeholderValues = map[string]bool{
	"-": true, "—": true, "–": true,
	"n/a": true, "na": true, "tbd": true,
}

var (
	inciWordRe    = regexp.MustCompile(`\(?[\w']+\)?`)
	letterWordRe  = regexp.MustCompile(`[A-Za-z]+`)
	doublePeriods = regexp.MustCompile(`[^.]\.\.(?:[^.]|$)`)
)

// Checker applies the copy-quality rule tables to extracted fields.
type Checker struct {
	rules      config.RulesConfig
	acronyms   map[string]bool // keyed uppercase
	connectors map[string]bool // keyed lowercase
}

// NewChecker builds a Checker from the configured rule tables.
func NewChecker(rules config.RulesConfig) *Checker {
	c := &Checker{
		rules:      rules,
		acronyms:   make(map[string]bool, len(rules.Acronyms)),
		connectors: make(map[string]bool, len(rules.INCIConnectors)),
	}
	for _, a := range rules.Acronyms {
		c.acronyms[strings.ToUpper(a)] = true
	}
	for _, w := range rules.INCIConnectors {
		c.connectors[strings.ToLower(w)] = true
	}
	return c
}

// CategoryFor decides which capitalization rule applies to a field name.
// Ingredient fields get the INCI rule; configured exempt fields keep
// their authored case; everything else is lowercase-only.
func (c *Checker) CategoryFor(fieldName string) Category {
	lower := strings.ToLower(fieldName)
	if strings.Contains(lower, "ingredient") {
		return CategoryINCI
	}
	for _, exempt := range c.rules.UppercaseExempt {
		if strings.Contains(lower, strings.ToLower(exempt)) {
			return CategoryExempt
		}
	}
	return CategoryRegular
}

// Check runs every copy-quality rule against a single field and returns
// the issues found, in rule order. It never fails; text that matches no
// rule simply produces no issue.
func (c *Checker) Check(f model.Field) []model.QualityIssue {
	var issues []model.QualityIssue

	issue := func(issueType, original, recommendation string, sev model.IssueSeverity) {
		issues = append(issues, model.QualityIssue{
			Language:       f.Language,
			FieldName:      f.Name,
			OriginalText:   truncate(original, 100),
			IssueType:      issueType,
			Recommendation: recommendation,
			Severity:       sev,
		})
	}

	text := f.Value

	switch c.CategoryFor(f.Name) {
	case CategoryINCI:
		for _, rec := range c.inciIssues(text) {
			issue("INCI Capitalization", text, rec, model.SeverityAttention)
		}
	case CategoryRegular:
		for _, word := range letterWordRe.FindAllString(text, -1) {
			if len(word) <= 1 || c.acronyms[strings.ToUpper(word)] {
				continue
			}
			if word != strings.ToLower(word) {
				issue("Capitalization", word,
					"'"+word+"' should be lowercase '"+strings.ToLower(word)+"'",
					model.SeverityFail)
			}
		}
	case CategoryExempt:
		// Case preserved as authored.
	}

	if strings.Contains(text, "  ") {
		issue("Formatting", text, "Remove extra spaces", model.SeverityAttention)
	}
	if doublePeriods.MatchString(text) {
		issue("Punctuation", text, "Check for double periods", model.SeverityAttention)
	}
	if strings.Contains(text, ",,") {
		issue("Punctuation", text, "Remove double commas", model.SeverityAttention)
	}
	if strings.Contains(text, " -> ") {
		issue("Legacy Content", text,
			"Contains ` -> ` separator - old text should be removed",
			model.SeverityAttention)
	}
	if pat, ok := instructionalMatch(text); ok {
		issue("Instructional Note", text,
			"Remove internal instruction (matched: "+pat+")",
			model.SeverityFail)
	}

	return issues
}

// inciIssues validates INCI capitalization: every word's first letter
// capitalized, connector words lowercase mid-string, acronyms uppercase.
func (c *Checker) inciIssues(text string) []string {
	var recs []string
	for i, raw := range inciWordRe.FindAllString(text, -1) {
		word := strings.Trim(raw, "()")
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)

		if c.connectors[lower] {
			// Connectors stay lowercase at word start, but the rule
			// does not apply at string start.
			if i > 0 && startsUpper(word) {
				recs = append(recs, "'"+word+"' should be lowercase '"+lower+"'")
			}
			continue
		}
		if len(word) < 2 || isDigits(word) {
			continue
		}
		if upper := strings.ToUpper(word); c.acronyms[upper] {
			if word != upper {
				recs = append(recs, "'"+word+"' should be '"+upper+"'")
			}
			continue
		}
		if word == strings.ToUpper(word) {
			continue // unknown all-caps token, likely an acronym
		}
		if startsLowerLetter(word) {
			recs = append(recs, "'"+word+"' should be '"+capitalize(word)+"'")
		}
	}
	return recs
}

func instructionalMatch(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || placeholderValues[strings.ToLower(trimmed)] {
		return "empty/placeholder value", true
	}
	for _, re := range instructionalPatterns {
		if re.MatchString(text) {
			return re.String(), true
		}
	}
	return "", false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func startsLowerLetter(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r) && unicode.IsLetter(r)
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
