package domain

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Hit is a vector store search result referencing a document id.
type Hit struct {
	DocID int
	Score float64
}

// VectorStore holds document vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(ids []int, vectors [][]float64) error
	Search(vector []float64, topK int) ([]Hit, error)
	Clear() error
}

// TopicDetector finds candidate topic phrases in raw (non-normalized) text.
// The default implementation is a capitalization heuristic; it can be
// swapped for a stronger extractor without touching the topic index.
type TopicDetector interface {
	DetectTopics(rawText string) []string
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Chatbot defines the query operations exposed by the application core.
type Chatbot interface {
	Ingest(rawText, name string) bool
	Answer(query string) Answer
	Respond(query string, maxContexts int, includeSupplementary bool) Answer
}
