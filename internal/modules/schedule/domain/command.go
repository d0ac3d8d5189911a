package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "timeline/internal/platform/errors"
)

type PendingKind string

const (
	PendingWeekly PendingKind = "week"
	PendingDated  PendingKind = "day"
)

// Pending is a parsed add command awaiting confirmation. Nothing is
// written until it is applied to a document.
type Pending struct {
	Kind    PendingKind
	Weekday int
	DateKey string
	Entry   Entry
}

// Describe renders the confirmation line, e.g. "Thr 13:30-15:30, review".
func (p Pending) Describe() string {
	target := p.DateKey
	if p.Kind == PendingWeekly {
		target = WeekdayName(p.Weekday)
	}
	return fmt.Sprintf("%s %s-%s, %s", target, p.Entry.BeginTime, p.Entry.EndTime, p.Entry.Event)
}

// Apply appends the pending entry to doc.
func (p Pending) Apply(doc *Document) error {
	switch p.Kind {
	case PendingWeekly:
		return doc.AppendWeekly(p.Weekday, p.Entry)
	case PendingDated:
		return doc.AppendDated(p.DateKey, p.Entry)
	default:
		return fmt.Errorf("%w: unknown pending kind %q", apperrors.ErrInvalidCommand, p.Kind)
	}
}

// ParseCommand interprets one add command:
//
//	week <weekday> <range> <label>
//	day <date expression> <range> <label>
//
// Empty input and "exit" return ErrTermination.
func ParseCommand(text string, ref time.Time) (Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "exit" {
		return Pending{}, apperrors.ErrTermination
	}
	kind, rest, ok := SplitFirst(text)
	if !ok {
		return Pending{}, fmt.Errorf("%w: %q needs arguments", apperrors.ErrInvalidCommand, kind)
	}

	var p Pending
	switch strings.ToLower(kind) {
	case string(PendingWeekly):
		token, remainder, _ := SplitFirst(rest)
		weekday, err := ParseWeekday(token)
		if err != nil {
			return Pending{}, err
		}
		p = Pending{Kind: PendingWeekly, Weekday: weekday}
		rest = remainder
	case string(PendingDated):
		date, remainder, err := ResolveDate(rest, ref)
		if err != nil {
			return Pending{}, err
		}
		p = Pending{Kind: PendingDated, DateKey: date.Key()}
		rest = remainder
	default:
		return Pending{}, fmt.Errorf("%w: unknown schedule type %q, expected week or day", apperrors.ErrInvalidCommand, kind)
	}

	if rest == "" {
		return Pending{}, apperrors.Malformed("", timeRangeGrammar+" followed by an event label")
	}
	r, label, err := ResolveTimeRange(rest)
	if err != nil {
		return Pending{}, err
	}
	if strings.TrimSpace(label) == "" {
		return Pending{}, &apperrors.InputError{Token: r.String(), Expected: "event label after time range"}
	}
	p.Entry = Entry{BeginTime: r.Begin, EndTime: r.End, Event: label}
	return p, nil
}
