// Package memory provides a brute-force in-memory vector store.
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Storage holds document vectors and ranks them by cosine similarity.
// Vectors are assumed L2-normalized, so similarity is a dot product.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	ids       []int
	vectors   [][]float64
}

// NewStorage creates an empty store.
func NewStorage() *Storage { return &Storage{} }

// Init sets the vector dimension and discards any held vectors.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.ids = nil
	s.vectors = nil
	return nil
}

// Upsert appends document vectors keyed by id.
func (s *Storage) Upsert(ids []int, vectors [][]float64) error {
	if len(ids) != len(vectors) {
		return errors.New("ids and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.ids = append(s.ids, ids...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns the topK most similar entries, highest score first.
// Ties keep insertion order, so identical queries against an unchanged
// store always rank identically.
func (s *Storage) Search(vector []float64, topK int) ([]domain.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	hits := make([]domain.Hit, len(s.vectors))
	for i := range s.vectors {
		hits[i] = domain.Hit{DocID: s.ids[i], Score: dot(s.vectors[i], vector)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// Clear discards all vectors but keeps the dimension.
func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.vectors = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
