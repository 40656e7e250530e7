package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/dates"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/embedding/tfidf"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/textproc"
	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/vectorstore/memory"
)

func makeDoc(t *testing.T, id int, name, raw string) *domain.Document {
	t.Helper()
	pre := textproc.NewPreprocessor()
	ex := dates.NewWithClock(func() time.Time {
		return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	})
	return &domain.Document{
		ID:         id,
		Name:       name,
		RawText:    raw,
		Normalized: pre.Normalize(raw),
		Sentences:  textproc.SplitSentences(raw),
		Dates:      ex.Extract(raw),
	}
}

func TestCapitalizedDetector(t *testing.T) {
	d := NewCapitalizedDetector()
	topics := d.DetectTopics("Join the SPRING CONCERT at HALL NINE now. AB is too short.")
	assert.Equal(t, []string{"SPRING CONCERT", "HALL NINE"}, topics)
}

func TestCapitalizedDetector_NoTopics(t *testing.T) {
	d := NewCapitalizedDetector()
	assert.Empty(t, d.DetectTopics("nothing shouted here."))
}

func TestBuildTopicIndex(t *testing.T) {
	docA := makeDoc(t, 0, "a.txt", "Welcome. The ANNUAL GALA is in May. Bring friends.")
	docB := makeDoc(t, 1, "b.txt", "Reminder: the ANNUAL GALA needs volunteers.")
	idx := BuildTopicIndex(NewCapitalizedDetector(), []*domain.Document{docA, docB})

	require.Equal(t, []string{"ANNUAL GALA"}, idx.Phrases())
	mentions := idx.Mentions("ANNUAL GALA")
	require.Len(t, mentions, 2)
	assert.Equal(t, "a.txt", mentions[0].DocumentName)
	assert.Equal(t, "The ANNUAL GALA is in May.", mentions[0].Sentence)
	assert.Equal(t, "b.txt", mentions[1].DocumentName)
}

func TestBuildTimeline_SortedAscending(t *testing.T) {
	docA := makeDoc(t, 0, "a.txt", "The winter show is on December 5, 2024. The gala is on June 2, 2025.")
	docB := makeDoc(t, 1, "b.txt", "Auditions are on January 10, 2025.")
	timeline := BuildTimeline([]*domain.Document{docA, docB})

	require.NotEmpty(t, timeline)
	for i := 1; i < len(timeline); i++ {
		assert.False(t, timeline[i].Date.Before(timeline[i-1].Date),
			"timeline must be ascending at index %d", i)
	}
	assert.Equal(t, "The winter show is on December 5, 2024.", timeline[0].Sentence)
	assert.Equal(t, "2024-12-05", timeline[0].DateText)
}

func TestBuildTimeline_UsesFirstContainingSentence(t *testing.T) {
	doc := makeDoc(t, 0, "a.txt", "Mark June 2, 2025 in your calendar. We said June 2, 2025 twice.")
	timeline := BuildTimeline([]*domain.Document{doc})
	require.NotEmpty(t, timeline)
	for _, ev := range timeline {
		assert.Equal(t, "Mark June 2, 2025 in your calendar.", ev.Sentence)
	}
}

func TestBuildRelevance_EmptyCorpus(t *testing.T) {
	r, err := BuildRelevance(tfidf.NewEmbedder(), memory.NewStorage(), nil)
	require.NoError(t, err)
	assert.Empty(t, r.Search("anything", 5))
}

func TestRelevance_SearchExcludesZeroScores(t *testing.T) {
	pre := textproc.NewPreprocessor()
	texts := []string{
		pre.Normalize("The spring concert is in the hall."),
		pre.Normalize("Budget meeting minutes for the board."),
	}
	r, err := BuildRelevance(tfidf.NewEmbedder(), memory.NewStorage(), texts)
	require.NoError(t, err)

	hits := r.Search(pre.Normalize("spring concert"), 5)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].DocID)
	assert.Greater(t, hits[0].Score, 0.0)
	assert.LessOrEqual(t, hits[0].Score, 1.0)

	assert.Empty(t, r.Search(pre.Normalize("ticket price"), 5))
}
