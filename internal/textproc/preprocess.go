package textproc

import (
	"regexp"
	"strings"
)

// Preprocessor normalizes raw text for relevance scoring: lowercase,
// punctuation and digits stripped to whitespace, stop words removed.
// The same normalization is applied to documents and queries so that
// term overlap is computed in a single shared space.
type Preprocessor struct {
	nonLetter *regexp.Regexp
	stopwords map[string]struct{}
}

// NewPreprocessor creates a preprocessor with the default English stop-word set.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		nonLetter: regexp.MustCompile(`[^\p{L}\s]+`),
		stopwords: defaultStopwords(),
	}
}

// Normalize returns the normalized form of text: surviving tokens joined
// with single spaces. The result may be empty.
func (p *Preprocessor) Normalize(text string) string {
	return strings.Join(p.Terms(text), " ")
}

// Terms returns the normalized token sequence of text.
func (p *Preprocessor) Terms(text string) []string {
	lower := strings.ToLower(text)
	stripped := p.nonLetter.ReplaceAllString(lower, " ")
	fields := strings.Fields(stripped)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, isStop := p.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TermSet returns the normalized tokens of text as a set.
func (p *Preprocessor) TermSet(text string) map[string]struct{} {
	terms := p.Terms(text)
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
