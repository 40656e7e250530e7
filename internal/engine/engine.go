// Package engine implements the retrieval and response-synthesis core:
// document ingestion, the corpus snapshot with its derived indexes, and
// the query-to-answer pipeline.
package engine

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/config"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/dates"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/embedding/tfidf"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/index"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/summarizer"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/textproc"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/vectorstore/memory"
)

// Deps carries the engine's pluggable strategies. Nil fields get defaults.
// Embedders and stores are created fresh for every rebuild so that a
// snapshot under construction never disturbs the one being queried.
type Deps struct {
	NewEmbedder  func() domain.Embedder
	NewStore     func() domain.VectorStore
	Detector     domain.TopicDetector
	Summarizer   domain.Summarizer
	Dates        *dates.Extractor
	Preprocessor *textproc.Preprocessor
}

// snapshot is the immutable derived state of one corpus generation.
// Queries read a snapshot without locking anything but the pointer; a
// failed rebuild leaves the previous snapshot in place untouched.
type snapshot struct {
	docs      []*domain.Document
	relevance *index.Relevance
	topics    *index.TopicIndex
	timeline  index.Timeline
	summary   string
}

// Engine is the chatbot core. A single writer drives ingestion; queries
// may run concurrently against the current snapshot.
type Engine struct {
	deps Deps

	maxContexts      int
	window           int
	supplementary    bool
	summarySentences int

	mu      sync.RWMutex
	sources []domain.Source
	snap    *snapshot
}

// New creates an engine from config and dependencies, filling defaults
// for whatever is missing.
func New(cfg *config.AppConfig, deps Deps) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Preprocessor == nil {
		deps.Preprocessor = textproc.NewPreprocessor()
	}
	if deps.NewEmbedder == nil {
		deps.NewEmbedder = func() domain.Embedder { return tfidf.NewEmbedder() }
	}
	if deps.NewStore == nil {
		deps.NewStore = func() domain.VectorStore { return memory.NewStorage() }
	}
	if deps.Detector == nil {
		deps.Detector = index.NewCapitalizedDetector()
	}
	if deps.Summarizer == nil {
		deps.Summarizer = summarizer.NewFrequencySummarizer(deps.Preprocessor)
	}
	if deps.Dates == nil {
		deps.Dates = dates.New()
	}
	return &Engine{
		deps:             deps,
		maxContexts:      cfg.Retrieval.MaxContexts,
		window:           cfg.Retrieval.ContextWindow,
		supplementary:    cfg.Answer.SupplementaryEnabled(),
		summarySentences: cfg.Summarizer.MaxSentences,
		snap:             &snapshot{},
	}
}

type incoming struct {
	rawText string
	name    string
	kind    domain.SourceKind
}

// Ingest adds one uploaded document. It returns false if the corpus could
// not be re-indexed, in which case nothing is mutated.
func (e *Engine) Ingest(rawText, name string) bool {
	return e.addDocuments([]incoming{{rawText, name, domain.SourceFile}}) == 1
}

// IngestWebPage adds one crawled page, marked as a web source.
func (e *Engine) IngestWebPage(rawText, name string) bool {
	return e.addDocuments([]incoming{{rawText, name, domain.SourceWeb}}) == 1
}

// IngestFile reads a file and ingests it under its base name.
// An unreadable file yields false.
func (e *Engine) IngestFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return e.addDocuments([]incoming{{string(data), filepath.Base(path), domain.SourceFile}}) == 1
}

// IngestDir ingests every readable .txt file in dir as web-page sources,
// rebuilding the indexes once, and returns the number of files added.
func (e *Engine) IngestDir(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	var batch []incoming
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		batch = append(batch, incoming{string(data), entry.Name(), domain.SourceWeb})
	}
	return e.addDocuments(batch)
}

// addDocuments appends the batch, rebuilds all derived state as one new
// snapshot, and swaps it in. On rebuild failure the engine is unchanged
// and 0 is reported.
func (e *Engine) addDocuments(batch []incoming) int {
	if len(batch) == 0 {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	docs := make([]*domain.Document, len(e.snap.docs), len(e.snap.docs)+len(batch))
	copy(docs, e.snap.docs)
	for _, in := range batch {
		docs = append(docs, e.buildDocument(len(docs), in.rawText, in.name))
	}
	snap, err := e.buildSnapshot(docs)
	if err != nil {
		return 0
	}
	now := time.Now()
	for _, in := range batch {
		e.sources = append(e.sources, domain.Source{Name: in.name, Kind: in.kind, AddedAt: now})
	}
	e.snap = snap
	return len(batch)
}

func (e *Engine) buildDocument(id int, rawText, name string) *domain.Document {
	return &domain.Document{
		ID:         id,
		Name:       name,
		RawText:    rawText,
		Normalized: e.deps.Preprocessor.Normalize(rawText),
		Sentences:  textproc.SplitSentences(rawText),
		Dates:      e.deps.Dates.Extract(rawText),
	}
}

func (e *Engine) buildSnapshot(docs []*domain.Document) (*snapshot, error) {
	texts := make([]string, len(docs))
	var raw strings.Builder
	for i, doc := range docs {
		texts[i] = doc.Normalized
		raw.WriteString(doc.RawText)
		raw.WriteString("\n")
	}
	relevance, err := index.BuildRelevance(e.deps.NewEmbedder(), e.deps.NewStore(), texts)
	if err != nil {
		return nil, err
	}
	summary, err := e.deps.Summarizer.Summarize(raw.String(), e.summarySentences)
	if err != nil {
		summary = ""
	}
	return &snapshot{
		docs:      docs,
		relevance: relevance,
		topics:    index.BuildTopicIndex(e.deps.Detector, docs),
		timeline:  index.BuildTimeline(docs),
		summary:   summary,
	}, nil
}

func (e *Engine) current() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Search ranks documents against the query by cosine similarity in the
// current snapshot's vector space. Zero-relevance documents are excluded.
func (e *Engine) Search(query string, topN int) []domain.DocumentMatch {
	snap := e.current()
	hits := snap.relevance.Search(e.deps.Preprocessor.Normalize(query), topN)
	out := make([]domain.DocumentMatch, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.DocumentMatch{Document: snap.docs[h.DocID], Score: h.Score})
	}
	return out
}

// DocumentCount reports how many documents are currently loaded.
func (e *Engine) DocumentCount() int { return len(e.current().docs) }

// Summary returns the extractive summary of the current corpus.
func (e *Engine) Summary() string { return e.current().summary }

// Sources returns the ingestion log in order.
func (e *Engine) Sources() []domain.Source {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.Source, len(e.sources))
	copy(out, e.sources)
	return out
}

// SourceNames returns the names of all ingested sources in order.
func (e *Engine) SourceNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.sources))
	for i, s := range e.sources {
		names[i] = s.Name
	}
	return names
}

// HasWebData reports whether any web-page source has been loaded.
func (e *Engine) HasWebData() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range e.sources {
		if s.Kind == domain.SourceWeb {
			return true
		}
	}
	return false
}
