package domain_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timeline/internal/modules/schedule/domain"
	apperrors "timeline/internal/platform/errors"
)

func TestLoadDocumentSynthesizesMissingPartitions(t *testing.T) {
	t.Parallel()
	doc, err := domain.LoadDocument([]byte(`{"day": {"2026-10-14": [{"beginTime": "09:00", "endTime": "10:00", "event": "standup"}]}}`))
	require.NoError(t, err)
	for i, slot := range doc.Week {
		require.NotNil(t, slot, "slot %d", i)
		require.Empty(t, slot)
	}
	require.Len(t, doc.Day["2026-10-14"], 1)

	doc, err = domain.LoadDocument([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Day)
}

func TestLoadDocumentRecoversFromCorruptState(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "not json", "[1,2,3]", `"week"`, "null", `{"week": [`} {
		_, err := domain.ParseDocument([]byte(raw))
		require.ErrorIs(t, err, apperrors.ErrCorruptState, raw)

		doc, err := domain.LoadDocument([]byte(raw))
		require.NoError(t, err, raw)
		weekly, dated := doc.Count()
		require.Zero(t, weekly+dated)
		require.NotNil(t, doc.Day)
	}
}

func TestLoadDocumentRejectsMalformedPartitions(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{
		`{"week": "mon"}`,
		`{"week": null}`,
		`{"week": [[], [], [], [], [], [], [], []]}`,
		`{"week": [{"beginTime": "09:00"}]}`,
		`{"week": [[{"beginTime": 9, "endTime": "10:00", "event": "x"}]]}`,
		`{"week": [null]}`,
		`{"day": []}`,
		`{"day": {"2026-10-14": {"event": "x"}}}`,
		`{"day": {"2026-10-14": ["x"]}}`,
	} {
		_, err := domain.LoadDocument([]byte(raw))
		require.ErrorIs(t, err, apperrors.ErrMalformedPartition, raw)
	}
}

func TestLoadDocumentPadsShortWeekAndAcceptsComments(t *testing.T) {
	t.Parallel()
	raw := `{
  // edited by hand
  "week": [
    [{"beginTime": "09:00", "endTime": "10:00", "event": "standup"}],
    [],
  ],
}`
	doc, err := domain.LoadDocument([]byte(raw))
	require.NoError(t, err)
	require.Len(t, doc.Week[0], 1)
	require.NotNil(t, doc.Week[6])
}

func TestDocumentFromMap(t *testing.T) {
	t.Parallel()
	doc, err := domain.DocumentFromMap(map[string]any{
		"week": []any{[]any{map[string]any{"beginTime": "09:00", "endTime": "10:00", "event": "standup"}}},
	})
	require.NoError(t, err)
	require.Equal(t, "standup", doc.Week[0][0].Event)

	_, err = domain.DocumentFromMap(map[string]any{"week": "nope"})
	require.ErrorIs(t, err, apperrors.ErrMalformedPartition)

	doc, err = domain.DocumentFromMap(nil)
	require.NoError(t, err)
	require.NotNil(t, doc.Day)

	_, err = domain.DocumentFromMap(map[string]any{"week": make(chan int)})
	require.ErrorIs(t, err, apperrors.ErrMalformedPartition)

	_, err = domain.DocumentFromMap(map[string]any{
		"week": []any{[]any{map[string]any{"beginTime": "09:00", "endTime": "10:00", "event": "standup"}}},
		"day":  map[string]any{"2026-10-20": []any{map[string]any{"beginTime": math.NaN()}}},
	})
	require.ErrorIs(t, err, apperrors.ErrMalformedPartition)

	_, err = domain.DocumentFromMap(map[string]any{"week": "mon", "day": math.Inf(1)})
	require.ErrorIs(t, err, apperrors.ErrMalformedPartition)

	doc, err = domain.DocumentFromMap(map[string]any{"notes": make(chan int)})
	require.NoError(t, err)
	weekly, dated := doc.Count()
	require.Zero(t, weekly)
	require.Zero(t, dated)
}

func TestMarshalDocumentRoundTrip(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument()
	require.NoError(t, doc.AppendWeekly(3, domain.Entry{BeginTime: "13:30", EndTime: "15:30", Event: "博士 <review> & sync"}))
	require.NoError(t, doc.AppendDated("2026-10-14", domain.Entry{BeginTime: "09:00", EndTime: "10:00:30", Event: "standup"}))

	raw, err := domain.MarshalDocument(doc)
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, "博士 <review> & sync")
	require.Contains(t, text, `"week": [`)
	require.Contains(t, text, `"beginTime": "13:30"`)
	require.True(t, strings.HasPrefix(text, "{\n  \"week\""))

	back, err := domain.LoadDocument(raw)
	require.NoError(t, err)
	require.Equal(t, doc, back)

	for _, now := range []time.Time{wednesday, thursdayAt(14, 0), thursdayAt(16, 0)} {
		want, err := domain.BuildReport(now, doc)
		require.NoError(t, err)
		got, err := domain.BuildReport(now, back)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestMarshalDocumentWritesEmptyPartitions(t *testing.T) {
	t.Parallel()
	raw, err := domain.MarshalDocument(domain.Document{})
	require.NoError(t, err)
	require.NotContains(t, string(raw), "null")
}

func TestAppendValidation(t *testing.T) {
	t.Parallel()
	doc := domain.Document{}
	err := doc.AppendWeekly(7, domain.Entry{})
	require.True(t, errors.Is(err, apperrors.ErrMalformedInput))
	require.Error(t, doc.AppendDated("tomorrow", domain.Entry{}))
	require.NoError(t, doc.AppendDated("2026-10-14", domain.Entry{BeginTime: "09:00", EndTime: "10:00", Event: "x"}))
	require.NoError(t, doc.AppendDated("2026-10-14", domain.Entry{BeginTime: "11:00", EndTime: "12:00", Event: "y"}))
	require.Len(t, doc.Day["2026-10-14"], 2)
	require.Equal(t, "y", doc.Day["2026-10-14"][1].Event)
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, domain.Entry{BeginTime: "09:00", EndTime: "08:00", Event: "reversed is allowed"}.Validate())
	require.Error(t, domain.Entry{BeginTime: "9", EndTime: "10:00", Event: "x"}.Validate())
	require.Error(t, domain.Entry{BeginTime: "09:00", EndTime: "10:00", Event: "  "}.Validate())
}
