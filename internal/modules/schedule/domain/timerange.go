package domain

import (
	"strings"

	apperrors "timeline/internal/platform/errors"
)

const timeRangeGrammar = "HH:MM-HH:MM or HH:MM HH:MM"

// TimeRange holds the begin and end tokens as the user typed them.
type TimeRange struct {
	Begin string
	End   string
}

// ResolveTimeRange consumes a time range from the front of text and
// returns the remaining label verbatim ("" when nothing follows).
func ResolveTimeRange(text string) (TimeRange, string, error) {
	head, rest, ok := SplitFirst(text)
	if head == "" {
		return TimeRange{}, "", apperrors.Malformed(text, timeRangeGrammar)
	}

	var r TimeRange
	if strings.Contains(head, "-") {
		parts := strings.Split(head, "-")
		if len(parts) != 2 {
			return TimeRange{}, "", &apperrors.InputError{Token: head, Expected: timeRangeGrammar, Reason: "exactly one '-' allowed"}
		}
		r = TimeRange{Begin: parts[0], End: parts[1]}
	} else {
		if !ok {
			return TimeRange{}, "", &apperrors.InputError{Token: head, Expected: timeRangeGrammar, Reason: "missing end time"}
		}
		var end string
		end, rest, ok = SplitFirst(rest)
		r = TimeRange{Begin: head, End: end}
	}

	if _, err := ParseTimeOfDay(r.Begin); err != nil {
		return TimeRange{}, "", err
	}
	if _, err := ParseTimeOfDay(r.End); err != nil {
		return TimeRange{}, "", err
	}
	if !ok {
		rest = ""
	}
	return r, rest, nil
}

func (r TimeRange) String() string {
	return r.Begin + "-" + r.End
}
