package domain

import "time"

// YearSource tags how an extracted date obtained its year.
type YearSource int

const (
	// YearExplicit means the year was present in the matched text.
	YearExplicit YearSource = iota
	// YearInferred means the year was filled in with the current calendar
	// year at extraction time. Such dates are time-dependent by design.
	YearInferred
)

// ExtractedDate is a single date candidate found in raw text.
// Original holds the exact matched substring; downstream lookups locate
// the sentence containing that literal text, never a reformatted form.
type ExtractedDate struct {
	Original string
	Date     time.Time
	Year     YearSource
}

// Normalized renders the calendar date as YYYY-MM-DD.
func (d ExtractedDate) Normalized() string { return d.Date.Format("2006-01-02") }

// HasExplicitYear reports whether the year came from the matched text.
func (d ExtractedDate) HasExplicitYear() bool { return d.Year == YearExplicit }

// SourceKind distinguishes uploaded files from crawled web pages.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceWeb  SourceKind = "web"
)

// Source records where an ingested document came from.
type Source struct {
	Name    string
	Kind    SourceKind
	AddedAt time.Time
}

// Document is a single ingested text with its derived per-document state.
// Documents are immutable once created; re-ingesting the same name appends
// a new entry rather than overwriting.
type Document struct {
	ID         int
	Name       string
	RawText    string
	Normalized string
	Sentences  []string
	Dates      []ExtractedDate
}

// DocumentMatch is a relevance search hit.
type DocumentMatch struct {
	Document *Document
	Score    float64
}

// Context is a passage of contiguous sentences around a query-matching
// sentence, scored by term overlap times document similarity.
type Context struct {
	DocumentName string
	Text         string
	Score        float64
}

// TimelineEvent is a dated sentence from the corpus.
type TimelineEvent struct {
	Date         time.Time
	DateText     string // YYYY-MM-DD
	Year         YearSource
	Sentence     string
	DocumentName string
}

// TopicMention links a detected topic phrase to a sentence mentioning it.
type TopicMention struct {
	DocumentName string
	Sentence     string
}

// Supplement is a "you might also be interested" item pulled from the
// timeline or topic index. Date is empty for topic-sourced items.
type Supplement struct {
	Text   string
	Source string
	Date   string
}

// Answer is the engine's response to a query.
// Sources are unique document names in first-seen order. Confidence is a
// heuristic in [0, 0.9], not a calibrated probability.
type Answer struct {
	Text       string
	Sources    []string
	Confidence float64
}
