// Package summarizer provides extractive corpus summaries.
package summarizer

import (
	"math"
	"sort"
	"strings"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/textproc"
)

// FrequencySummarizer ranks sentences by normalized token frequency and
// returns the best ones in their original order.
type FrequencySummarizer struct {
	pre *textproc.Preprocessor
}

// NewFrequencySummarizer creates a frequency-based sentence ranker.
func NewFrequencySummarizer(pre *textproc.Preprocessor) *FrequencySummarizer {
	if pre == nil {
		pre = textproc.NewPreprocessor()
	}
	return &FrequencySummarizer{pre: pre}
}

// Summarize returns up to maxSentences sentences selected by token
// frequency, keeping original document order among the selected.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := textproc.SplitSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.pre.Terms(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		terms := s.pre.Terms(sent)
		sscore := 0.0
		for _, tok := range terms {
			sscore += freq[tok]
		}
		// Length normalization avoids favoring long sentences
		if l := float64(len(terms)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " "), nil
}
