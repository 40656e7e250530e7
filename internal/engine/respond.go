package engine

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Fixed answer wording. Confidence below lowConfidenceThreshold appends
// the caveat; confidence never exceeds confidenceCap because the engine
// assembles text without verifying it semantically.
const (
	msgNoData            = "I don't have any information loaded yet. Please upload some text files or load website data."
	msgNoMatch           = "I have some information on this topic, but please ask the directors for further details."
	supplementaryHeading = "\nYou might also be interested to know that:\n"
	msgLowConfidence     = "If you need more specific details, please ask the directors for further information."

	confidenceCap          = 0.9
	lowConfidenceThreshold = 0.5
	maxSupplements         = 2
)

// Answer responds to a query with the configured defaults.
func (e *Engine) Answer(query string) domain.Answer {
	return e.Respond(query, e.maxContexts, e.supplementary)
}

// Respond assembles an answer from the best passages in the current
// snapshot, optionally enriched with timeline and topic supplements.
// It never fails: an empty corpus or an unanswerable query produces a
// fixed fallback with degraded confidence.
func (e *Engine) Respond(query string, maxContexts int, includeSupplementary bool) domain.Answer {
	snap := e.current()
	if len(snap.docs) == 0 {
		return domain.Answer{Text: msgNoData, Sources: []string{}, Confidence: 0.0}
	}
	if maxContexts <= 0 {
		maxContexts = e.maxContexts
	}
	contexts := e.extractContexts(snap, query, maxContexts, e.window)
	if len(contexts) == 0 {
		return domain.Answer{Text: msgNoMatch, Sources: []string{}, Confidence: 0.1}
	}

	var b strings.Builder
	var sources []string
	for i, c := range contexts {
		if i == 0 {
			b.WriteString(c.Text)
		} else {
			b.WriteString("Additionally, ")
			b.WriteString(lowerFirst(c.Text))
		}
		b.WriteString("\n\n")
		sources = appendUnique(sources, c.DocumentName)
	}

	if includeSupplementary {
		supplements := e.findSupplementary(snap, e.deps.Preprocessor.Terms(query), contexts, maxSupplements)
		if len(supplements) > 0 {
			b.WriteString(supplementaryHeading)
			for _, s := range supplements {
				b.WriteString("- ")
				b.WriteString(s.Text)
				b.WriteString("\n")
				sources = appendUnique(sources, s.Source)
			}
		}
	}

	confidence := 0.0
	for _, c := range contexts {
		if c.Score > confidence {
			confidence = c.Score
		}
	}
	confidence = math.Min(confidenceCap, confidence)

	b.WriteString("\nThis information comes from ")
	b.WriteString(strings.Join(sources, ", "))
	b.WriteString(".\n\n")
	if confidence < lowConfidenceThreshold {
		b.WriteString(msgLowConfidence)
	}
	return domain.Answer{Text: b.String(), Sources: sources, Confidence: confidence}
}

// findSupplementary scans the timeline chronologically, then the topic
// index in insertion order, for items related to the query that are not
// already covered by the assembled passages.
func (e *Engine) findSupplementary(snap *snapshot, queryTerms []string, contexts []domain.Context, maxItems int) []domain.Supplement {
	var out []domain.Supplement
	for _, event := range snap.timeline {
		if len(out) >= maxItems {
			break
		}
		if textInContexts(event.Sentence, contexts) {
			continue
		}
		if containsAnyTerm(e.deps.Preprocessor.Normalize(event.Sentence), queryTerms) {
			out = append(out, domain.Supplement{
				Text:   event.Sentence,
				Source: event.DocumentName,
				Date:   event.DateText,
			})
		}
	}
	if len(out) < maxItems {
		for _, phrase := range snap.topics.Phrases() {
			if len(out) >= maxItems {
				break
			}
			if textInContexts(phrase, contexts) || phraseInSupplements(phrase, out) {
				continue
			}
			if !containsAnyTerm(strings.ToLower(phrase), queryTerms) {
				continue
			}
			for _, m := range snap.topics.Mentions(phrase) {
				out = append(out, domain.Supplement{Text: m.Sentence, Source: m.DocumentName})
				if len(out) >= maxItems {
					break
				}
			}
		}
	}
	return out
}

func textInContexts(text string, contexts []domain.Context) bool {
	for _, c := range contexts {
		if strings.Contains(c.Text, text) {
			return true
		}
	}
	return false
}

func phraseInSupplements(phrase string, supplements []domain.Supplement) bool {
	for _, s := range supplements {
		if strings.Contains(s.Text, phrase) {
			return true
		}
	}
	return false
}

func containsAnyTerm(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
