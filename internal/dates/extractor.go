// Package dates extracts calendar dates from free text.
//
// Extraction is best-effort: a pipeline of independent regex patterns feeds
// a shared validation step, candidates with impossible month/day
// combinations are dropped silently, and overlapping patterns may each
// produce a candidate for the same span (no deduplication).
package dates

import (
	"regexp"
	"strconv"
	"time"

	"github.com/icedover13/bridgeland-orchestra-chatbot/internal/domain"
)

// Month name tables, matched case-sensitively. A capitalized word that is
// not listed here simply fails resolution and the candidate is skipped.
var monthsByName = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "Jun": time.June, "Jul": time.July,
	"Aug": time.August, "Sep": time.September, "Oct": time.October,
	"Nov": time.November, "Dec": time.December,
}

// Full-date patterns carry an explicit year; partial patterns do not.
// Ordinal suffixes (1st, 2nd, ...) and an optional "of" are tolerated in
// the spelled-out forms; numeric forms accept "/" or "-" separators.
var (
	fullPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?P<month>[A-Za-z]+)\s+(?P<day>\d{1,2})(?:st|nd|rd|th)?,?\s+(?P<year>\d{4})`),
		regexp.MustCompile(`(?P<day>\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(?P<month>[A-Za-z]+),?\s+(?P<year>\d{4})`),
		regexp.MustCompile(`(?P<month>\d{1,2})[/-](?P<day>\d{1,2})[/-](?P<year>\d{4})`),
		regexp.MustCompile(`(?P<month>\d{1,2})[/-](?P<day>\d{1,2})[/-](?P<year>\d{2})`),
	}
	partialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?P<month>[A-Za-z]+)\s+(?P<day>\d{1,2})(?:st|nd|rd|th)?`),
		regexp.MustCompile(`(?P<day>\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(?P<month>[A-Za-z]+)`),
		regexp.MustCompile(`(?P<month>\d{1,2})[/-](?P<day>\d{1,2})`),
	}
)

// Extractor finds date expressions in raw text and normalizes them to
// calendar dates. Partial dates (no year) default to the current calendar
// year at extraction time, which makes them time-dependent; the clock is
// injectable so that dependence is explicit.
type Extractor struct {
	now func() time.Time
}

// New creates an extractor anchored to the wall clock.
func New() *Extractor { return NewWithClock(time.Now) }

// NewWithClock creates an extractor using the given clock for inferred years.
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract returns every date candidate found in text. It never fails;
// unresolvable or invalid candidates are simply omitted.
func (e *Extractor) Extract(text string) []domain.ExtractedDate {
	var out []domain.ExtractedDate
	for _, pattern := range fullPatterns {
		for _, match := range findNamed(pattern, text) {
			month, ok := resolveMonth(match.groups["month"])
			if !ok {
				continue
			}
			day, _ := strconv.Atoi(match.groups["day"])
			year, _ := strconv.Atoi(match.groups["year"])
			if year < 100 {
				year = expandTwoDigitYear(year)
			}
			date, ok := validDate(year, month, day)
			if !ok {
				continue
			}
			out = append(out, domain.ExtractedDate{
				Original: match.text,
				Date:     date,
				Year:     domain.YearExplicit,
			})
		}
	}
	currentYear := e.now().Year()
	for _, pattern := range partialPatterns {
		for _, match := range findNamed(pattern, text) {
			month, ok := resolveMonth(match.groups["month"])
			if !ok {
				continue
			}
			day, _ := strconv.Atoi(match.groups["day"])
			date, ok := validDate(currentYear, month, day)
			if !ok {
				continue
			}
			out = append(out, domain.ExtractedDate{
				Original: match.text,
				Date:     date,
				Year:     domain.YearInferred,
			})
		}
	}
	return out
}

// expandTwoDigitYear maps 2-digit years below 50 into the 2000s and the
// rest into the 1900s.
func expandTwoDigitYear(year int) int {
	if year < 50 {
		return year + 2000
	}
	return year + 1900
}

// resolveMonth accepts a numeric month or a full/abbreviated English name.
func resolveMonth(s string) (time.Month, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	m, ok := monthsByName[s]
	return m, ok
}

// validDate builds a UTC midnight date and rejects combinations that
// time.Date would normalize away (e.g. February 30).
func validDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

type namedMatch struct {
	text   string
	groups map[string]string
}

func findNamed(re *regexp.Regexp, text string) []namedMatch {
	var out []namedMatch
	names := re.SubexpNames()
	for _, sub := range re.FindAllStringSubmatch(text, -1) {
		groups := make(map[string]string, len(names))
		for i, name := range names {
			if name != "" {
				groups[name] = sub[i]
			}
		}
		out = append(out, namedMatch{text: sub[0], groups: groups})
	}
	return out
}
