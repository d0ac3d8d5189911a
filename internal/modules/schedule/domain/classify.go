package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ClassifiedEvent is an entry placed on the reference day.
type ClassifiedEvent struct {
	Begin time.Time
	End   time.Time
	Label string
}

// EntriesFor returns the entries that apply on now's date: the weekly slot
// for its weekday followed by the dated entries for its key.
func EntriesFor(now time.Time, doc Document) []Entry {
	var out []Entry
	if weekday := WeekdayIndex(now); weekday < len(doc.Week) {
		out = append(out, doc.Week[weekday]...)
	}
	out = append(out, doc.Day[DateOf(now).Key()]...)
	return out
}

// Classify splits entries into ongoing (begin <= now <= end) and waiting
// (now < begin), each ordered by begin, end, then label. Entries already
// over are dropped, as are entries with an empty label. Begin and end are
// taken on now's date without wrapping past midnight, so an entry such
// as 23:00-01:00 is never ongoing.
func Classify(now time.Time, entries []Entry) (ongoing, waiting []ClassifiedEvent, err error) {
	for _, e := range entries {
		begin, err := ParseTimeOfDay(e.BeginTime)
		if err != nil {
			return nil, nil, fmt.Errorf("unrecognized beginTime: %w", err)
		}
		end, err := ParseTimeOfDay(e.EndTime)
		if err != nil {
			return nil, nil, fmt.Errorf("unrecognized endTime: %w", err)
		}
		if e.Event == "" {
			continue
		}
		ev := ClassifiedEvent{Begin: begin.On(now), End: end.On(now), Label: e.Event}
		switch {
		case !ev.Begin.After(now) && !now.After(ev.End):
			ongoing = append(ongoing, ev)
		case now.Before(ev.Begin):
			waiting = append(waiting, ev)
		}
	}
	slices.SortFunc(ongoing, compareEvents)
	slices.SortFunc(waiting, compareEvents)
	return ongoing, waiting, nil
}

func compareEvents(a, b ClassifiedEvent) int {
	if c := a.Begin.Compare(b.Begin); c != 0 {
		return c
	}
	if c := a.End.Compare(b.End); c != 0 {
		return c
	}
	return strings.Compare(a.Label, b.Label)
}
