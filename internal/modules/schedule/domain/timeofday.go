package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "timeline/internal/platform/errors"
)

const timeOfDayGrammar = "HH:MM or HH:MM:SS"

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?$`)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts HH:MM and HH:MM:SS with hour 0-23 and
// minute/second 0-59.
func ParseTimeOfDay(token string) (TimeOfDay, error) {
	m := timeOfDayPattern.FindStringSubmatch(token)
	if m == nil {
		return TimeOfDay{}, apperrors.Malformed(token, timeOfDayGrammar)
	}
	t := TimeOfDay{}
	t.Hour, _ = strconv.Atoi(m[1])
	t.Minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		t.Second, _ = strconv.Atoi(m[3])
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, &apperrors.InputError{Token: token, Expected: timeOfDayGrammar, Reason: "field out of range"}
	}
	return t, nil
}

// IsTimeOfDay is the predicate form of ParseTimeOfDay.
func IsTimeOfDay(token string) bool {
	_, err := ParseTimeOfDay(token)
	return err == nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// On places t on day's calendar date. The sub-second part and location of
// day are kept, so comparisons against day itself are exact.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, day.Nanosecond(), day.Location())
}
