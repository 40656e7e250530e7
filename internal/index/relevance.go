// Package index holds the derived corpus indexes: the term-weighted
// relevance index, the topic index, and the date timeline. All three are
// functions of the current document set and are rebuilt in full after
// every ingestion.
package index

import (
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Relevance is a fitted vector space over the corpus's normalized texts.
// Because term weights depend on corpus-wide document frequencies, a
// Relevance value is immutable: corpus changes require building a new one.
type Relevance struct {
	embedder domain.Embedder
	store    domain.VectorStore
	fitted   bool
}

// BuildRelevance fits the embedder over the normalized document texts and
// loads one vector per document into the store. An empty corpus yields a
// valid index whose searches return nothing.
func BuildRelevance(embedder domain.Embedder, store domain.VectorStore, normalizedTexts []string) (*Relevance, error) {
	r := &Relevance{embedder: embedder, store: store}
	if len(normalizedTexts) == 0 {
		return r, nil
	}
	if err := embedder.Prepare(normalizedTexts); err != nil {
		return nil, err
	}
	if err := store.Init(embedder.Dimension()); err != nil {
		return nil, err
	}
	ids := make([]int, len(normalizedTexts))
	vectors := make([][]float64, len(normalizedTexts))
	for i, text := range normalizedTexts {
		vec, err := embedder.Embed(text)
		if err != nil {
			return nil, err
		}
		ids[i] = i
		vectors[i] = vec
	}
	if err := store.Upsert(ids, vectors); err != nil {
		return nil, err
	}
	r.fitted = true
	return r, nil
}

// Search projects the normalized query into the fitted space and returns
// up to topN document hits by cosine similarity, highest first. Documents
// with zero similarity are excluded entirely.
func (r *Relevance) Search(normalizedQuery string, topN int) []domain.Hit {
	if r == nil || !r.fitted || topN <= 0 {
		return nil
	}
	vec, err := r.embedder.Embed(normalizedQuery)
	if err != nil {
		return nil
	}
	hits, err := r.store.Search(vec, topN)
	if err != nil {
		return nil
	}
	out := make([]domain.Hit, 0, len(hits))
	for _, h := range hits {
		if h.Score > 0 {
			out = append(out, h)
		}
	}
	return out
}
