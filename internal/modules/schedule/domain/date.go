package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "timeline/internal/platform/errors"
)

const (
	dateKeyLayout = "2006-01-02"
	dateGrammar   = "today, tomorrow, day offset, next[N]week <weekday>, thisweek <weekday>, YYYY-M-D, YY-M-D or M-D"
)

var (
	dayOffsetPattern = regexp.MustCompile(`^[+-]?\d+$`)
	nextWeekPattern  = regexp.MustCompile(`^next([+-]?\d+)?week$`)
)

// absoluteLayouts are tried in order; the first that parses wins.
var absoluteLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-1-2", true},
	{"06-1-2", true},
	{"1-2", false},
}

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days later; n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Key is the YYYY-MM-DD form used by the dated partition.
func (d Date) Key() string {
	return d.Midnight(time.UTC).Format(dateKeyLayout)
}

func (d Date) Weekday() int {
	return WeekdayIndex(d.Midnight(time.UTC))
}

func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return d.Key()
}

// ParseDateKey parses a dated-partition key.
func ParseDateKey(key string) (Date, error) {
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return Date{}, apperrors.Malformed(key, "YYYY-MM-DD")
	}
	return DateOf(t), nil
}

// ResolveDate consumes the leading date expression of expr and resolves
// it against ref. The unconsumed remainder is returned as is, or empty
// when the expression used every token.
func ResolveDate(expr string, ref time.Time) (Date, string, error) {
	head, rest, _ := SplitFirst(expr)
	if head == "" {
		return Date{}, "", apperrors.Malformed(expr, dateGrammar)
	}
	base := DateOf(ref)
	word := strings.ToLower(head)

	switch {
	case word == "today":
		return base, rest, nil
	case word == "tomorrow":
		return base.AddDays(1), rest, nil
	case dayOffsetPattern.MatchString(word):
		n, err := strconv.Atoi(word)
		if err != nil {
			return Date{}, "", &apperrors.InputError{Token: head, Expected: dateGrammar, Reason: "day offset out of range"}
		}
		return base.AddDays(n), rest, nil
	case word == "thisweek":
		weekday, rest, err := resolveWeekdayArg(head, rest)
		if err != nil {
			return Date{}, "", err
		}
		return base.AddDays(weekday - WeekdayIndex(ref)), rest, nil
	}

	if m := nextWeekPattern.FindStringSubmatch(word); m != nil {
		weeks := 1
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return Date{}, "", &apperrors.InputError{Token: head, Expected: dateGrammar, Reason: "week count out of range"}
			}
			weeks = n
		}
		weekday, rest, err := resolveWeekdayArg(head, rest)
		if err != nil {
			return Date{}, "", err
		}
		return base.AddDays(weeks*DaysPerWeek - WeekdayIndex(ref) + weekday), rest, nil
	}

	d, err := parseAbsoluteDate(head, ref)
	if err != nil {
		return Date{}, "", err
	}
	return d, rest, nil
}

func resolveWeekdayArg(keyword, rest string) (int, string, error) {
	token, remainder, _ := SplitFirst(rest)
	if token == "" {
		return 0, "", &apperrors.InputError{Token: keyword, Expected: weekdayGrammar, Reason: "missing weekday after " + keyword}
	}
	weekday, err := ParseWeekday(token)
	if err != nil {
		return 0, "", err
	}
	return weekday, remainder, nil
}

func parseAbsoluteDate(token string, ref time.Time) (Date, error) {
	for _, candidate := range absoluteLayouts {
		t, err := time.Parse(candidate.layout, token)
		if err != nil {
			continue
		}
		if candidate.hasYear {
			return DateOf(t), nil
		}
		// The yearless layout parses in year 0, which is a leap year;
		// re-check the day against the reference year.
		d := Date{Year: ref.Year(), Month: t.Month(), Day: t.Day()}
		if DateOf(d.Midnight(time.UTC)) != d {
			return Date{}, &apperrors.InputError{Token: token, Expected: dateGrammar, Reason: fmt.Sprintf("day out of range in %d", ref.Year())}
		}
		return d, nil
	}
	return Date{}, &apperrors.InputError{Token: token, Expected: dateGrammar, Reason: "unrecognized date data"}
}
