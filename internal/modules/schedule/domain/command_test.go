package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"timeline/internal/modules/schedule/domain"
	apperrors "timeline/internal/platform/errors"
)

func TestParseCommandTermination(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"", "   ", "exit", " exit\n"} {
		_, err := domain.ParseCommand(text, wednesday)
		require.ErrorIs(t, err, apperrors.ErrTermination, text)
	}
}

func TestParseCommandInvalid(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"week", "month Mon 09:00-10:00 x", "EXIT now"} {
		_, err := domain.ParseCommand(text, wednesday)
		require.ErrorIs(t, err, apperrors.ErrInvalidCommand, text)
	}
	for _, text := range []string{"week Thu 09:00-10:00 x", "week Mon", "week Mon 09:00-10:00", "day nextweek", "day today 9-10 x", "day 2022-4-13 13:30 lunch"} {
		_, err := domain.ParseCommand(text, wednesday)
		require.ErrorIs(t, err, apperrors.ErrMalformedInput, text)
	}
}

func TestParseCommandWeekly(t *testing.T) {
	t.Parallel()
	p, err := domain.ParseCommand("Week Thr 13:30-15:30 do  something", wednesday)
	require.NoError(t, err)
	require.Equal(t, domain.PendingWeekly, p.Kind)
	require.Equal(t, 3, p.Weekday)
	require.Equal(t, domain.Entry{BeginTime: "13:30", EndTime: "15:30", Event: "do  something"}, p.Entry)
	require.Equal(t, "Thr 13:30-15:30, do  something", p.Describe())

	p, err = domain.ParseCommand("week 0 08:00 09:00:30 gym", wednesday)
	require.NoError(t, err)
	require.Equal(t, 0, p.Weekday)
	require.Equal(t, "09:00:30", p.Entry.EndTime)
}

func TestParseCommandDated(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"day today 13:30-15:30 x":         "2026-10-14",
		"DAY 0 13:30-15:30 x":             "2026-10-14",
		"day 2022-4-13 13:30-15:30 x":     "2022-04-13",
		"day thisweek Mon 13:30-15:30 x":  "2026-10-12",
		"day nextweek Mon 13:30-15:30 x":  "2026-10-19",
		"day next1week Mon 13:30 15:30 x": "2026-10-19",
		"day tomorrow 13:30-15:30 x":      "2026-10-15",
	}
	for text, key := range cases {
		p, err := domain.ParseCommand(text, wednesday)
		require.NoError(t, err, text)
		require.Equal(t, domain.PendingDated, p.Kind, text)
		require.Equal(t, key, p.DateKey, text)
		require.Equal(t, "x", p.Entry.Event, text)
	}
	p, err := domain.ParseCommand("day 2022-4-13 13:30-15:30 do something", wednesday)
	require.NoError(t, err)
	require.Equal(t, "2022-04-13 13:30-15:30, do something", p.Describe())
}

func TestPendingApply(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument()
	weekly, err := domain.ParseCommand("week Sun 10:00-11:00 brunch", wednesday)
	require.NoError(t, err)
	dated, err := domain.ParseCommand("day tomorrow 10:00-11:00 dentist", wednesday)
	require.NoError(t, err)

	require.NoError(t, weekly.Apply(&doc))
	require.NoError(t, dated.Apply(&doc))
	require.Equal(t, "brunch", doc.Week[6][0].Event)
	require.Equal(t, "dentist", doc.Day["2026-10-15"][0].Event)

	require.ErrorIs(t, domain.Pending{Kind: "month"}.Apply(&doc), apperrors.ErrInvalidCommand)
}
