package model

import (
	"fmt"
	"path"
	"time"
)

// DateFormat is the date layout used in file names and titles
const DateFormat = "2006-01-02"

// windowSeparator joins the start and end dates (en dash, not hyphen)
const windowSeparator = "–"

// TimeWindow is the UTC interval a recap covers, bounds inclusive
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow returns the trailing window of the given number of days ending at now
func NewTimeWindow(now time.Time, days int) TimeWindow {
	if days <= 0 {
		days = 7
	}
	end := now.UTC()
	return TimeWindow{
		Start: end.Add(-time.Duration(days) * 24 * time.Hour),
		End:   end,
	}
}

// Contains reports whether t falls inside the window
func (w TimeWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label returns the "<start>–<end>" date range string
func (w TimeWindow) Label() string {
	return fmt.Sprintf("%s%s%s",
		w.Start.UTC().Format(DateFormat),
		windowSeparator,
		w.End.UTC().Format(DateFormat))
}

// Title returns the recap title for this window
func (w TimeWindow) Title() string {
	return fmt.Sprintf("Weekly Recap: %s", w.Label())
}

// FilePath returns the recap file path relative to the output root
func (w TimeWindow) FilePath() string {
	return path.Join("recap", w.Label()+".md")
}
