// Package analytics turns raw income and expense records into period
// summaries, comparisons against the preceding period, category rankings
// and trailing monthly series.
package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/expense-tracker/internal/models"
)

var (
	// ErrInvalidPeriod is returned for an unrecognized period keyword
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidRange is returned for an unparseable, partial or inverted date range
	ErrInvalidRange = errors.New("invalid date range")
	// ErrAggregationFailure wraps any store failure during a report
	ErrAggregationFailure = errors.New("aggregation failure")
)

// PeriodGap separates the previous window from the current one so a
// transaction on the boundary is never counted in both.
const PeriodGap = 24 * time.Hour

const day = 24 * time.Hour

// Keyword is a named reporting period
type Keyword string

const (
	Week    Keyword = "Week"
	Month   Keyword = "Month"
	Quarter Keyword = "Quarter"
	Year    Keyword = "Year"
)

var keywords = []Keyword{Week, Month, Quarter, Year}

// ParseKeyword accepts the recognized keywords case-insensitively; empty means Month
func ParseKeyword(s string) (Keyword, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month, nil
	}
	for _, k := range keywords {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: period %q must be one of %v", ErrInvalidPeriod, s, keywords)
}

// start returns the beginning of a window of this length ending at now
func (k Keyword) start(now time.Time) time.Time {
	switch k {
	case Week:
		return now.AddDate(0, 0, -7)
	case Quarter:
		return now.AddDate(0, -3, 0)
	case Year:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// TrailingMonths is the length of the trend series for this keyword
func (k Keyword) TrailingMonths() int {
	if k == Year {
		return 12
	}
	return 6
}

// Query is the caller's raw request
type Query struct {
	Period    string
	StartDate string
	EndDate   string
}

// Window is a resolved request: the current period and the one it is compared against
type Window struct {
	Keyword  Keyword
	Current  models.Period
	Previous models.Period
}

// Resolve validates q and computes both periods. Explicit dates take
// precedence over the keyword; the keyword still sizes the trend series.
func Resolve(now time.Time, q Query) (Window, error) {
	kw, err := ParseKeyword(q.Period)
	if err != nil {
		return Window{}, err
	}

	var current models.Period
	switch {
	case q.StartDate != "" && q.EndDate != "":
		start, err := ParseDate("startDate", q.StartDate)
		if err != nil {
			return Window{}, err
		}
		end, err := ParseDate("endDate", q.EndDate)
		if err != nil {
			return Window{}, err
		}
		if !start.Before(end) {
			return Window{}, fmt.Errorf("%w: startDate %s must be before endDate %s",
				ErrInvalidRange, q.StartDate, q.EndDate)
		}
		current = models.Period{Start: start, End: end}
	case q.StartDate != "":
		return Window{}, fmt.Errorf("%w: endDate is required when startDate is set", ErrInvalidRange)
	case q.EndDate != "":
		return Window{}, fmt.Errorf("%w: startDate is required when endDate is set", ErrInvalidRange)
	default:
		current = windowEndingAt(now, now.Sub(kw.start(now)))
	}

	return Window{
		Keyword:  kw,
		Current:  current,
		Previous: windowEndingAt(current.Start.Add(-PeriodGap), current.Duration()),
	}, nil
}

// windowEndingAt is the single interval formula used for both the current and previous window
func windowEndingAt(end time.Time, d time.Duration) models.Period {
	return models.Period{Start: end.Add(-d), End: end}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads an ISO-8601 date or timestamp as UTC. The error names field.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s %q is not an ISO-8601 date (expected YYYY-MM-DD or RFC 3339)",
		ErrInvalidRange, field, value)
}

// Days is the number of whole days a period touches, at least one
func Days(p models.Period) int64 {
	d := p.Duration()
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// trailingMonths returns n calendar-month spans ending with the month containing now, oldest first
func trailingMonths(now time.Time, n int) []models.Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]models.Period, n)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, i-(n-1), 0)
		out[i] = models.Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	}
	return out
}
