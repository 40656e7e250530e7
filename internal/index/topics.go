package index

import (
	"regexp"
	"strings"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// CapitalizedDetector finds maximal runs of uppercase letters and spaces,
// a coarse heading/emphasis heuristic standing in for entity recognition.
type CapitalizedDetector struct {
	pattern *regexp.Regexp
	minLen  int
}

// NewCapitalizedDetector creates the default topic detector. Runs whose
// trimmed length is minLen characters or fewer are ignored.
func NewCapitalizedDetector() *CapitalizedDetector {
	return &CapitalizedDetector{
		pattern: regexp.MustCompile(`\b[A-Z][A-Z\s]+\b`),
		minLen:  3,
	}
}

// DetectTopics returns each qualifying uppercase run, trimmed, one entry
// per occurrence in the text.
func (d *CapitalizedDetector) DetectTopics(rawText string) []string {
	var out []string
	for _, run := range d.pattern.FindAllString(rawText, -1) {
		phrase := strings.TrimSpace(run)
		if len(phrase) > d.minLen {
			out = append(out, phrase)
		}
	}
	return out
}

// TopicIndex maps detected topic phrases to the sentences mentioning them.
// Phrase iteration order is insertion order, which the supplementary
// lookup depends on.
type TopicIndex struct {
	order    []string
	mentions map[string][]domain.TopicMention
}

// BuildTopicIndex scans every document's raw text with the detector and
// records, per phrase occurrence, the document's first sentence containing
// the phrase verbatim.
func BuildTopicIndex(detector domain.TopicDetector, docs []*domain.Document) *TopicIndex {
	t := &TopicIndex{mentions: make(map[string][]domain.TopicMention)}
	for _, doc := range docs {
		for _, phrase := range detector.DetectTopics(doc.RawText) {
			sentence, ok := firstContaining(doc.Sentences, phrase)
			if !ok {
				continue
			}
			t.add(phrase, domain.TopicMention{DocumentName: doc.Name, Sentence: sentence})
		}
	}
	return t
}

func (t *TopicIndex) add(phrase string, m domain.TopicMention) {
	if _, seen := t.mentions[phrase]; !seen {
		t.order = append(t.order, phrase)
	}
	t.mentions[phrase] = append(t.mentions[phrase], m)
}

// Phrases returns the recorded phrases in insertion order.
func (t *TopicIndex) Phrases() []string { return t.order }

// Mentions returns the recorded mentions for a phrase.
func (t *TopicIndex) Mentions(phrase string) []domain.TopicMention { return t.mentions[phrase] }

// Len returns the number of distinct phrases.
func (t *TopicIndex) Len() int { return len(t.order) }

func firstContaining(sentences []string, substr string) (string, bool) {
	for _, s := range sentences {
		if strings.Contains(s, substr) {
			return s, true
		}
	}
	return "", false
}
