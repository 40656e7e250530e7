package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsPunctuationDigitsAndStopwords(t *testing.T) {
	p := NewPreprocessor()
	got := p.Normalize("The Spring Concert, on April 15, 2025!")
	assert.Equal(t, "spring concert april", got)
}

func TestNormalize_EmptyForAllStopwords(t *testing.T) {
	p := NewPreprocessor()
	assert.Equal(t, "", p.Normalize("the and of 123 ..."))
}

func TestTerms_KeepsDuplicates(t *testing.T) {
	p := NewPreprocessor()
	assert.Equal(t, []string{"concert", "concert"}, p.Terms("Concert concert!"))
}

func TestTermSet(t *testing.T) {
	p := NewPreprocessor()
	set := p.TermSet("When is the spring concert?")
	assert.Contains(t, set, "spring")
	assert.Contains(t, set, "concert")
	assert.NotContains(t, set, "the")
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Spring Concert - April 15, 2025. Join us! Will you come?")
	assert.Equal(t, []string{
		"Spring Concert - April 15, 2025.",
		"Join us!",
		"Will you come?",
	}, got)
}

func TestSplitSentences_KeepsUnterminatedTail(t *testing.T) {
	got := SplitSentences("First sentence. trailing fragment without a period")
	assert.Equal(t, []string{
		"First sentence.",
		"trailing fragment without a period",
	}, got)
}

func TestSplitSentences_Empty(t *testing.T) {
	assert.Empty(t, SplitSentences("   "))
}
