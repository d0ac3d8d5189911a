package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"
)

// Occurrence is one concrete instance of an entry on a specific day.
type Occurrence struct {
	Date   Date
	Begin  time.Time
	End    time.Time
	Label  string
	Weekly bool
}

// WeeklyRule is the RRULE for a Monday-based weekday slot.
func WeeklyRule(weekday int) string {
	return "FREQ=WEEKLY;BYDAY=" + rruleDays[weekday]
}

// Agenda lists every occurrence between from's date and the following
// days-1 days, weekly slots expanded by their recurrence rule. Entries
// with an empty label are skipped as in Classify.
func Agenda(from time.Time, days int, doc Document) ([]Occurrence, error) {
	if days <= 0 {
		return nil, nil
	}
	loc := from.Location()
	first := DateOf(from)
	start := first.Midnight(loc)
	last := first.AddDays(days - 1).Midnight(loc)

	var out []Occurrence
	for weekday, slot := range doc.Week {
		if len(slot) == 0 {
			continue
		}
		r, err := rrule.StrToRRule(WeeklyRule(weekday))
		if err != nil {
			return nil, fmt.Errorf("weekly rule for %s: %w", WeekdayName(weekday), err)
		}
		r.DTStart(start)
		for _, day := range r.Between(start, last, true) {
			occ, err := place(DateOf(day), loc, slot, true)
			if err != nil {
				return nil, err
			}
			out = append(out, occ...)
		}
	}

	for i := 0; i < days; i++ {
		d := first.AddDays(i)
		occ, err := place(d, loc, doc.Day[d.Key()], false)
		if err != nil {
			return nil, err
		}
		out = append(out, occ...)
	}

	slices.SortFunc(out, func(a, b Occurrence) int {
		return compareEvents(
			ClassifiedEvent{Begin: a.Begin, End: a.End, Label: a.Label},
			ClassifiedEvent{Begin: b.Begin, End: b.End, Label: b.Label},
		)
	})
	return out, nil
}

func place(d Date, loc *time.Location, entries []Entry, weekly bool) ([]Occurrence, error) {
	out := make([]Occurrence, 0, len(entries))
	midnight := d.Midnight(loc)
	for _, e := range entries {
		begin, err := ParseTimeOfDay(e.BeginTime)
		if err != nil {
			return nil, fmt.Errorf("unrecognized beginTime on %s: %w", d, err)
		}
		end, err := ParseTimeOfDay(e.EndTime)
		if err != nil {
			return nil, fmt.Errorf("unrecognized endTime on %s: %w", d, err)
		}
		if e.Event == "" {
			continue
		}
		out = append(out, Occurrence{
			Date:   d,
			Begin:  begin.On(midnight),
			End:    end.On(midnight),
			Label:  e.Event,
			Weekly: weekly,
		})
	}
	return out, nil
}
