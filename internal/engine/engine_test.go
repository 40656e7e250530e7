package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/dates"
)

func newTestEngine() *Engine {
	return New(nil, Deps{
		Dates: dates.NewWithClock(func() time.Time {
			return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
		}),
	})
}

const springConcertText = "Spring Concert - April 15, 2025. " +
	"Join us for our annual spring concert at the community hall. " +
	"Refreshments follow in the lobby."

func TestAnswer_EmptyCorpus(t *testing.T) {
	eng := newTestEngine()
	ans := eng.Answer("anything")
	assert.Equal(t, msgNoData, ans.Text)
	assert.Empty(t, ans.Sources)
	assert.Zero(t, ans.Confidence)
}

func TestAnswer_RelevantMatch(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest(springConcertText, "spring_concert.txt"))

	ans := eng.Answer("When is the spring concert?")
	assert.NotEmpty(t, ans.Sources)
	assert.Equal(t, []string{"spring_concert.txt"}, ans.Sources)
	assert.Contains(t, ans.Text, "April 15")
	assert.Contains(t, ans.Text, "This information comes from spring_concert.txt.")
	assert.Greater(t, ans.Confidence, 0.0)
	assert.LessOrEqual(t, ans.Confidence, 0.9)
}

func TestAnswer_NoMatchFallback(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest(
		"Our orchestra rehearses weekly. Concerts happen every season in town.",
		"orchestra.txt"))

	ans := eng.Answer("What is the ticket price?")
	assert.Less(t, ans.Confidence, 0.5)
	assert.Empty(t, ans.Sources)
	assert.Contains(t, ans.Text, "ask the directors")
}

func TestAnswer_LowConfidenceCaveat(t *testing.T) {
	eng := newTestEngine()
	// Many documents sharing vocabulary dilute cosine similarity enough to
	// land below the caveat threshold.
	require.True(t, eng.Ingest("The brass section practices scales daily in spring.", "a.txt"))
	require.True(t, eng.Ingest("The string section tunes quietly before rehearsal.", "b.txt"))
	require.True(t, eng.Ingest("Percussion players count rests carefully tonight.", "c.txt"))

	ans := eng.Answer("What does the brass section practice?")
	if ans.Confidence < 0.5 {
		assert.Contains(t, ans.Text, msgLowConfidence)
	} else {
		assert.NotContains(t, ans.Text, msgLowConfidence)
	}
}

func TestAnswer_AdditionallyJoinsSecondPassage(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest("The concert features Brahms. Doors open early.", "a.txt"))
	require.True(t, eng.Ingest("The concert ends with an encore. Parking is limited.", "b.txt"))

	ans := eng.Answer("concert")
	assert.Contains(t, ans.Text, "Additionally, the")
	assert.Len(t, ans.Sources, 2)
}

func TestRespond_SupplementaryIncluded(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest(springConcertText, "spring_concert.txt"))
	require.True(t, eng.Ingest(
		"Rehearsal Notes. The final concert rehearsal takes place on May 1, 2025.",
		"rehearsals.txt"))

	ans := eng.Respond("When is the spring concert?", 1, true)
	assert.Contains(t, ans.Text, "You might also be interested to know that:")
	assert.Contains(t, ans.Sources, "rehearsals.txt")
}

func TestRespond_SupplementaryDisabled(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest(springConcertText, "spring_concert.txt"))
	require.True(t, eng.Ingest(
		"Rehearsal Notes. The final concert rehearsal takes place on May 1, 2025.",
		"rehearsals.txt"))

	ans := eng.Respond("When is the spring concert?", 1, false)
	assert.NotContains(t, ans.Text, "You might also be interested to know that:")
}

func TestSearch_IdempotentOverUnchangedCorpus(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest("The spring concert is in the hall.", "a.txt"))
	require.True(t, eng.Ingest("The spring raffle funds new music stands.", "b.txt"))

	first := eng.Search("spring concert", 5)
	second := eng.Search("spring concert", 5)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Document.Name, second[i].Document.Name)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestSearch_ScoresChangeWhenCorpusGrows(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest("The spring concert is in the hall.", "a.txt"))
	before := eng.Search("spring concert", 5)
	require.Len(t, before, 1)

	require.True(t, eng.Ingest("Spring cleaning of the hall happens monthly.", "b.txt"))
	after := eng.Search("spring concert", 5)
	require.NotEmpty(t, after)
	// Term weights are corpus-wide, so relative scores may legitimately
	// shift after ingestion; the top document must still be a.txt.
	assert.Equal(t, "a.txt", after[0].Document.Name)
}

func TestIngest_FailedRebuildLeavesStateUnchanged(t *testing.T) {
	eng := newTestEngine()
	assert.False(t, eng.Ingest("the and of 123", "stopwords.txt"))
	assert.Zero(t, eng.DocumentCount())
	assert.Empty(t, eng.SourceNames())

	ans := eng.Answer("anything")
	assert.Zero(t, ans.Confidence)
}

func TestIngest_AssignsMonotonicIDs(t *testing.T) {
	eng := newTestEngine()
	require.True(t, eng.Ingest("The concert is soon.", "a.txt"))
	require.True(t, eng.Ingest("The concert is soon.", "a.txt"))

	assert.Equal(t, 2, eng.DocumentCount())
	assert.Equal(t, []string{"a.txt", "a.txt"}, eng.SourceNames())
}

func TestIngestFile_Unreadable(t *testing.T) {
	eng := newTestEngine()
	assert.False(t, eng.IngestFile(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestIngestDir_LoadsTxtFilesAsWebSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.txt"),
		[]byte("The festival runs all summer."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.txt"),
		[]byte("Reach the directors by phone."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"),
		[]byte("ignored"), 0o644))

	eng := newTestEngine()
	assert.False(t, eng.HasWebData())
	assert.Equal(t, 2, eng.IngestDir(dir))
	assert.True(t, eng.HasWebData())
	assert.Equal(t, 2, eng.DocumentCount())
}

func TestIngestDir_MissingDirectory(t *testing.T) {
	eng := newTestEngine()
	assert.Zero(t, eng.IngestDir(filepath.Join(t.TempDir(), "nope")))
}

func TestSummary_RebuiltOnIngest(t *testing.T) {
	eng := newTestEngine()
	assert.Empty(t, eng.Summary())
	require.True(t, eng.Ingest("The spring concert is in the hall.", "a.txt"))
	assert.NotEmpty(t, eng.Summary())
}
