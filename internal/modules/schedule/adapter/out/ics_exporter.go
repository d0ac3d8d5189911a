package out

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	"timeline/internal/modules/schedule/domain"
	scheduleout "timeline/internal/modules/schedule/port/out"
	"timeline/internal/platform/id"
	"timeline/internal/platform/log"
)

const (
	productID = "-//timeline//schedule//EN"

	// floatingLayout is an iCalendar local time without a zone. Weekly
	// rules expand on the entry's wall-clock weekday.
	floatingLayout = "20060102T150405"
)

// ICSExporter writes the document as an iCalendar feed. Weekly slots
// become recurring events starting on their next occurrence from the
// anchor date; dated entries become single events.
type ICSExporter struct {
	idGen id.Generator
}

func NewICSExporter(idGen id.Generator) scheduleout.CalendarExporter {
	return &ICSExporter{idGen: idGen}
}

func (e *ICSExporter) Export(_ context.Context, doc domain.Document, anchor time.Time, w io.Writer) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	loc := anchor.Location()
	today := domain.DateOf(anchor)
	stamp := anchor.UTC()
	count := 0

	for weekday, slot := range doc.Week {
		first := today.AddDays((weekday - today.Weekday() + domain.DaysPerWeek) % domain.DaysPerWeek)
		for i, entry := range slot {
			event, err := e.addEvent(cal, fmt.Sprintf("week/%s/%d", domain.WeekdayName(weekday), i), first, loc, entry, stamp)
			if err != nil {
				return 0, err
			}
			if event == nil {
				continue
			}
			event.AddProperty(ical.ComponentPropertyRrule, domain.WeeklyRule(weekday))
			count++
		}
	}

	keys := make([]string, 0, len(doc.Day))
	for key := range doc.Day {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		date, err := domain.ParseDateKey(key)
		if err != nil {
			log.Error("skipping dated entries", err, "key", key)
			continue
		}
		for i, entry := range doc.Day[key] {
			event, err := e.addEvent(cal, fmt.Sprintf("day/%s/%d", key, i), date, loc, entry, stamp)
			if err != nil {
				return 0, err
			}
			if event != nil {
				count++
			}
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, fmt.Errorf("write calendar: %w", err)
	}
	log.Debug("calendar exported", "events", count)
	return count, nil
}

// addEvent returns nil for entries with an empty label. An end before the
// begin is clamped; entries never cross midnight.
func (e *ICSExporter) addEvent(cal *ical.Calendar, name string, date domain.Date, loc *time.Location, entry domain.Entry, stamp time.Time) (*ical.VEvent, error) {
	begin, err := domain.ParseTimeOfDay(entry.BeginTime)
	if err != nil {
		return nil, fmt.Errorf("unrecognized beginTime in %s: %w", name, err)
	}
	end, err := domain.ParseTimeOfDay(entry.EndTime)
	if err != nil {
		return nil, fmt.Errorf("unrecognized endTime in %s: %w", name, err)
	}
	if entry.Event == "" {
		return nil, nil
	}
	midnight := date.Midnight(loc)
	start := begin.On(midnight)
	finish := end.On(midnight)
	if finish.Before(start) {
		finish = start
	}

	event := cal.AddEvent(e.idGen.For(name) + "@timeline")
	event.SetDtStampTime(stamp)
	event.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
	event.SetProperty(ical.ComponentPropertyDtEnd, finish.Format(floatingLayout))
	event.SetSummary(entry.Event)
	return event, nil
}
