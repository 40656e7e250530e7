package index

import (
	"sort"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Timeline is every dated sentence in the corpus, sorted ascending by
// calendar date. The sort is stable, so same-day events keep discovery
// order (document order, then date order within a document).
type Timeline []domain.TimelineEvent

// BuildTimeline records, for each extracted date of each document, the
// first sentence containing the date's literal matched substring. Dates
// whose substring appears in no sentence are skipped.
func BuildTimeline(docs []*domain.Document) Timeline {
	var events Timeline
	for _, doc := range docs {
		for _, d := range doc.Dates {
			sentence, ok := firstContaining(doc.Sentences, d.Original)
			if !ok {
				continue
			}
			events = append(events, domain.TimelineEvent{
				Date:         d.Date,
				DateText:     d.Normalized(),
				Year:         d.Year,
				Sentence:     sentence,
				DocumentName: doc.Name,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}
