package in

import (
	"bufio"
	"fmt"
	"io"

	"timeline/internal/modules/schedule/dto"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	ongoingHeader   = "---Ongoing---"
	waitingHeader   = "---Waiting---"
)

// WriteReport prints the report in the plain text layout:
//
//	2026-10-15 14:00:00
//
//	<message>
//
//	---Ongoing---
//	design review, 13:30-15:30
//	Countdown: 01:30:00
//
// The waiting section follows when there is anything left today.
func WriteReport(w io.Writer, r dto.ReportOutput) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", r.Now.Format(timestampLayout))
	fmt.Fprintf(bw, "%s\n\n", r.Message)
	if len(r.Ongoing) > 0 {
		fmt.Fprintln(bw, ongoingHeader)
		writeItems(bw, r.Ongoing)
	}
	if len(r.Waiting) > 0 {
		fmt.Fprintln(bw, waitingHeader)
		writeItems(bw, r.Waiting)
	}
	return bw.Flush()
}

func writeItems(w io.Writer, items []dto.EventOutput) {
	for _, item := range items {
		fmt.Fprintf(w, "%s, %s-%s\n", item.Label, item.Begin, item.End)
		fmt.Fprintf(w, "Countdown: %s\n\n", item.CountdownText)
	}
}

// WriteAgenda prints one line per occurrence, grouped under a date header.
func WriteAgenda(w io.Writer, occurrences []dto.OccurrenceOutput) error {
	bw := bufio.NewWriter(w)
	current := ""
	for _, occ := range occurrences {
		if occ.Date != current {
			if current != "" {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "%s %s\n", occ.Date, occ.Weekday)
			current = occ.Date
		}
		marker := " "
		if occ.Weekly {
			marker = "*"
		}
		fmt.Fprintf(bw, "  %s %s-%s %s\n", marker, occ.Begin, occ.End, occ.Label)
	}
	return bw.Flush()
}

// WriteEntries prints search results as tab separated rows.
func WriteEntries(w io.Writer, entries []dto.EntryOutput) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s\t%s %s\t%s-%s\t%s\n", e.ID, e.Kind, e.Slot, e.BeginTime, e.EndTime, e.Event)
	}
	return bw.Flush()
}
