package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/artcheck/internal/config"
	"github.com/prooflab/artcheck/internal/model"
)

func testRules() config.RulesConfig {
	return config.RulesConfig{
		Acronyms: []string{
			"ML", "FL", "OZ", "USA", "EU", "UK", "GB", "BE",
			"AHA", "BHA", "PHA", "NP", "SPF",
		},
		INCIConnectors: []string{
			"de", "du", "des", "la", "le", "les", "d'", "l'",
			"of", "the", "and", "with", "et", "cum",
		},
		UppercaseExempt: []string{
			"Address Block", "Biorius Address", "Formula Country of Origin",
			"Ingredient List", "Fill Weight",
		},
	}
}

func field(name, value string) model.Field {
	return model.Field{Name: name, Language: "EN", Panel: model.PanelFront, Value: value, Source: model.SourceCopyDoc}
}

func recommendations(issues []model.QualityIssue, issueType string) []string {
	var out []string
	for _, i := range issues {
		if i.IssueType == issueType {
			out = append(out, i.Recommendation)
		}
	}
	return out
}

func TestCategoryFor(t *testing.T) {
	c := NewChecker(testRules())

	assert.Equal(t, CategoryINCI, c.CategoryFor("Ingredient List"))
	assert.Equal(t, CategoryINCI, c.CategoryFor("Key Ingredients"))
	assert.Equal(t, CategoryExempt, c.CategoryFor("Address Block"))
	assert.Equal(t, CategoryExempt, c.CategoryFor("Fill Weight"))
	assert.Equal(t, CategoryRegular, c.CategoryFor("Marketing Copy"))
}

func TestCheckCapitalizationRegularField(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Marketing Copy", "Gentle cleanser for daily use"))
	recs := recommendations(issues, "Capitalization")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "'Gentle' should be lowercase 'gentle'")

	// Acronyms are allowed uppercase anywhere.
	issues = c.Check(field("Marketing Copy", "with SPF and AHA for daily use"))
	assert.Empty(t, recommendations(issues, "Capitalization"))
}

func TestCheckCapitalizationExemptField(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Address Block", "123 Main Street, New York"))
	assert.Empty(t, recommendations(issues, "Capitalization"))
}

func TestINCICapitalization(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Key Ingredients", "key ingredientsceramide np"))
	recs := strings.Join(recommendations(issues, "INCI Capitalization"), "; ")
	assert.Contains(t, recs, "'Key'")
	assert.Contains(t, recs, "'Ingredientsceramide'")
	assert.Contains(t, recs, "'NP'")
}

func TestINCIConnectorsStayLowercase(t *testing.T) {
	c := NewChecker(testRules())

	// "of" mid-string is correct lowercase: no issue.
	issues := c.Check(field("Ingredient List", "Oil of Olay"))
	assert.Empty(t, recommendations(issues, "INCI Capitalization"))

	// Capitalized connector mid-string is flagged.
	issues = c.Check(field("Ingredient List", "Oil Of Olay"))
	recs := recommendations(issues, "INCI Capitalization")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "'Of' should be lowercase 'of'")
}

func TestINCIValidListProducesNoIssues(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Ingredient List", "Aqua, Cocos Nucifera (Coconut) Oil, Beurre de Karité"))
	assert.Empty(t, recommendations(issues, "INCI Capitalization"))
}

func TestFormattingAndPunctuation(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Marketing Copy", "rinse  well"))
	assert.Contains(t, recommendations(issues, "Formatting"), "Remove extra spaces")

	issues = c.Check(field("Marketing Copy", "rinse well,, then dry"))
	assert.Contains(t, recommendations(issues, "Punctuation"), "Remove double commas")

	// Ellipsis is not a double-period issue.
	issues = c.Check(field("Marketing Copy", "and more..."))
	assert.Empty(t, recommendations(issues, "Punctuation"))
}

func TestLegacyArrow(t *testing.T) {
	c := NewChecker(testRules())

	issues := c.Check(field("Marketing Copy", "old claim -> new claim"))
	require.Len(t, recommendations(issues, "Legacy Content"), 1)
}

func TestInstructionalNotes(t *testing.T) {
	c := NewChecker(testRules())

	for _, value := range []string{
		"TBD",
		"add logo once confirmed",
		"waiting for first PO",
		"yes – also add B Corp logo",
		"final size?",
		"-",
	} {
		issues := c.Check(field("Marketing Copy", value))
		assert.NotEmpty(t, recommendations(issues, "Instructional Note"), "value %q", value)
	}

	issues := c.Check(field("Marketing Copy", "gentle cleanser for daily use"))
	assert.Empty(t, recommendations(issues, "Instructional Note"))
}

func TestCheckNeverPanicsOnOddInput(t *testing.T) {
	c := NewChecker(testRules())

	for _, value := range []string{"", "   ", "42", "(((", "日本語テキスト"} {
		assert.NotPanics(t, func() { c.Check(field("Marketing Copy", value)) })
	}
}
