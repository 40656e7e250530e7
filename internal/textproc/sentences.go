package textproc

import (
	"regexp"
	"strings"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// SplitSentences segments text on terminal punctuation, keeping a trailing
// unterminated remainder as its own sentence. Every non-whitespace part of
// the input ends up in exactly one sentence, so literal substrings (matched
// dates, topic phrases) can always be located in some sentence.
func SplitSentences(text string) []string {
	matches := sentenceRe.FindAllStringIndex(text, -1)
	var sentences []string
	last := 0
	for _, m := range matches {
		s := strings.TrimSpace(text[m[0]:m[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = m[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
