package domain

import (
	"fmt"
	"time"
)

// ReportState is re-derived from the document and clock on every call.
type ReportState string

const (
	StateOngoing ReportState = "ongoing"
	StateWaiting ReportState = "waiting"
	StateIdle    ReportState = "finish"
)

type ReportItem struct {
	Label     string
	Begin     time.Time
	End       time.Time
	Countdown time.Duration
}

// Report is today's status. Waiting items are listed in both the ongoing
// and waiting states.
type Report struct {
	Now     time.Time
	State   ReportState
	Ongoing []ReportItem
	Waiting []ReportItem
}

func BuildReport(now time.Time, doc Document) (Report, error) {
	ongoing, waiting, err := Classify(now, EntriesFor(now, doc))
	if err != nil {
		return Report{}, err
	}
	r := Report{Now: now, State: StateIdle}
	for _, ev := range ongoing {
		r.Ongoing = append(r.Ongoing, ReportItem{Label: ev.Label, Begin: ev.Begin, End: ev.End, Countdown: ev.End.Sub(now)})
	}
	for _, ev := range waiting {
		r.Waiting = append(r.Waiting, ReportItem{Label: ev.Label, Begin: ev.Begin, End: ev.End, Countdown: ev.Begin.Sub(now)})
	}
	switch {
	case len(r.Ongoing) > 0:
		r.State = StateOngoing
	case len(r.Waiting) > 0:
		r.State = StateWaiting
	}
	return r, nil
}

// FormatCountdown renders d as HH:MM:SS.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
