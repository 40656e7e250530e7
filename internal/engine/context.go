package engine

import (
	"sort"
	"strings"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Per candidate document, passages are built around this many of its
// best-matching sentences.
const topSentencesPerDoc = 2

// extractContexts finds the best passages for a query: rank documents by
// cosine similarity, score each candidate's sentences by query-term
// overlap, window the top sentences into passages, then rank all passages
// by overlap times document similarity and keep the best maxContexts.
func (e *Engine) extractContexts(snap *snapshot, query string, maxContexts, window int) []domain.Context {
	hits := snap.relevance.Search(e.deps.Preprocessor.Normalize(query), maxContexts)
	if len(hits) == 0 {
		return nil
	}
	queryTerms := e.deps.Preprocessor.TermSet(query)
	var contexts []domain.Context
	for _, h := range hits {
		doc := snap.docs[h.DocID]
		type scored struct {
			idx     int
			overlap int
		}
		var ranked []scored
		for i, sentence := range doc.Sentences {
			if overlap := e.termOverlap(queryTerms, sentence); overlap > 0 {
				ranked = append(ranked, scored{i, overlap})
			}
		}
		// Stable: ties keep original sentence order
		sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].overlap > ranked[b].overlap })
		if len(ranked) > topSentencesPerDoc {
			ranked = ranked[:topSentencesPerDoc]
		}
		for _, s := range ranked {
			start := s.idx - window
			if start < 0 {
				start = 0
			}
			end := s.idx + window + 1
			if end > len(doc.Sentences) {
				end = len(doc.Sentences)
			}
			contexts = append(contexts, domain.Context{
				DocumentName: doc.Name,
				Text:         strings.Join(doc.Sentences[start:end], " "),
				Score:        float64(s.overlap) * h.Score,
			})
		}
	}
	sort.SliceStable(contexts, func(i, j int) bool { return contexts[i].Score > contexts[j].Score })
	if len(contexts) > maxContexts {
		contexts = contexts[:maxContexts]
	}
	return contexts
}

// termOverlap counts the distinct normalized terms a sentence shares with
// the query.
func (e *Engine) termOverlap(queryTerms map[string]struct{}, sentence string) int {
	seen := make(map[string]struct{})
	count := 0
	for _, term := range e.deps.Preprocessor.Terms(sentence) {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := queryTerms[term]; ok {
			count++
		}
	}
	return count
}
