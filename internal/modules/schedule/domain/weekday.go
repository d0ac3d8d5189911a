package domain

import (
	"strconv"
	"strings"
	"time"

	apperrors "timeline/internal/platform/errors"
)

const DaysPerWeek = 7

const weekdayGrammar = "weekday (Mon Tue Wed Thr Fri Sat Sun) or index 0-6"

// Thursday is "Thr" in stored commands and confirmations.
var weekdayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thr", "Fri", "Sat", "Sun"}

var rruleDays = [DaysPerWeek]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// WeekdayIndex returns t's weekday with Monday=0 .. Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}

func WeekdayName(index int) string {
	if index < 0 || index >= DaysPerWeek {
		return strconv.Itoa(index)
	}
	return weekdayNames[index]
}

// ParseWeekday resolves a three-letter name (case-insensitive) or a
// numeral to a Monday-based index.
func ParseWeekday(token string) (int, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(token, name) {
			return i, nil
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, apperrors.Malformed(token, weekdayGrammar)
	}
	if n < 0 || n >= DaysPerWeek {
		return 0, &apperrors.InputError{Token: token, Expected: weekdayGrammar, Reason: "index out of range"}
	}
	return n, nil
}
