package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"timeline/internal/modules/schedule/domain"
	"timeline/internal/modules/schedule/service"
	"timeline/internal/platform/clock"
	"timeline/internal/platform/config"
	apperrors "timeline/internal/platform/errors"
	"timeline/internal/platform/id"
)

type memoryStore struct {
	doc     domain.Document
	saves   int
	loadErr error
}

func (m *memoryStore) Load(context.Context) (domain.Document, error) {
	if m.loadErr != nil {
		return domain.Document{}, m.loadErr
	}
	data, err := domain.MarshalDocument(m.doc)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.ParseDocument(data)
}

func (m *memoryStore) Save(_ context.Context, doc domain.Document) error {
	m.doc = doc
	m.saves++
	return nil
}

type recordingProjector struct {
	entries   []domain.IndexedEntry
	resets    int
	upsertErr error
}

func (p *recordingProjector) Reset(context.Context) error {
	p.resets++
	p.entries = nil
	return nil
}

func (p *recordingProjector) Upsert(_ context.Context, entries []domain.IndexedEntry) error {
	if p.upsertErr != nil {
		return p.upsertErr
	}
	p.entries = append(p.entries, entries...)
	return nil
}

func (p *recordingProjector) Search(_ context.Context, query string, limit int) ([]domain.IndexedEntry, error) {
	var out []domain.IndexedEntry
	for _, e := range p.entries {
		if strings.Contains(strings.ToLower(e.Entry.Event), strings.ToLower(query)) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

type countingExporter struct{}

func (countingExporter) Export(_ context.Context, doc domain.Document, _ time.Time, w io.Writer) (int, error) {
	weekly, dated := doc.Count()
	_, err := io.WriteString(w, "BEGIN:VCALENDAR")
	return weekly + dated, err
}

// Thursday 2026-10-15.
var thursday = time.Date(2026, 10, 15, 14, 0, 0, 0, time.Local)

func newService(t *testing.T, doc domain.Document) (*service.ScheduleService, *memoryStore, *recordingProjector) {
	t.Helper()
	store := &memoryStore{doc: doc}
	projector := &recordingProjector{}
	svc := service.NewScheduleService(clock.Fixed(thursday), id.Stable{}, store, projector, countingExporter{}, config.DefaultMessages())
	return svc, store, projector
}

func TestReportPicksMessageForState(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument()
	doc.Week[3] = []domain.Entry{{BeginTime: "13:30", EndTime: "15:30", Event: "review"}}
	svc, _, _ := newService(t, doc)

	report, message, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.State != domain.StateOngoing {
		t.Fatalf("expected ongoing, got %s", report.State)
	}
	found := false
	for _, variant := range config.DefaultMessages()["ongoing"] {
		if variant == message {
			found = true
		}
	}
	if !found {
		t.Fatalf("message %q is not an ongoing variant", message)
	}

	_, again, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if again != message {
		t.Fatalf("same instant should pick the same message, got %q and %q", message, again)
	}
}

func TestReportIdleWithEmptyDocument(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, domain.NewDocument())
	report, message, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.State != domain.StateIdle || message == "" {
		t.Fatalf("unexpected idle report: %+v %q", report, message)
	}
}

func TestReportPropagatesStoreError(t *testing.T) {
	t.Parallel()
	svc, store, _ := newService(t, domain.NewDocument())
	store.loadErr = apperrors.PartitionError("week", "not an array")
	if _, _, err := svc.Report(context.Background()); !errors.Is(err, apperrors.ErrMalformedPartition) {
		t.Fatalf("expected malformed partition, got %v", err)
	}
}

func TestStageDoesNotWrite(t *testing.T) {
	t.Parallel()
	svc, store, _ := newService(t, domain.NewDocument())
	pending, err := svc.Stage(context.Background(), "day tomorrow 9:00-10:00 dentist")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if pending.DateKey != "2026-10-16" {
		t.Fatalf("unexpected date key %q", pending.DateKey)
	}
	if store.saves != 0 {
		t.Fatalf("stage must not save, saves=%d", store.saves)
	}
}

func TestCommitSavesAndProjects(t *testing.T) {
	t.Parallel()
	svc, store, projector := newService(t, domain.NewDocument())
	ctx := context.Background()

	pending, err := svc.Stage(ctx, "week Thr 13:30-15:30 review")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := svc.Commit(ctx, pending); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if store.saves != 1 || len(store.doc.Week[3]) != 1 {
		t.Fatalf("unexpected store state: saves=%d week=%v", store.saves, store.doc.Week[3])
	}
	if len(projector.entries) != 1 || projector.entries[0].ID == "" {
		t.Fatalf("expected one projected entry with id, got %+v", projector.entries)
	}

	found, err := svc.Find(ctx, "REV", 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 1 || found[0].Slot() != "Thr" {
		t.Fatalf("unexpected find result %+v", found)
	}
}

func TestCommitKeepsDocumentWhenProjectionFails(t *testing.T) {
	t.Parallel()
	svc, store, projector := newService(t, domain.NewDocument())
	projector.upsertErr = errors.New("disk full")

	pending := domain.Pending{Kind: domain.PendingDated, DateKey: "2026-10-20", Entry: domain.Entry{BeginTime: "8:00", EndTime: "9:00", Event: "train"}}
	if _, err := svc.Commit(context.Background(), pending); err != nil {
		t.Fatalf("commit should succeed, got %v", err)
	}
	if len(store.doc.Day["2026-10-20"]) != 1 {
		t.Fatalf("entry not saved: %+v", store.doc.Day)
	}
}

func TestCommitRejectsInvalidEntry(t *testing.T) {
	t.Parallel()
	svc, store, _ := newService(t, domain.NewDocument())
	pending := domain.Pending{Kind: domain.PendingWeekly, Weekday: 1, Entry: domain.Entry{BeginTime: "25:00", EndTime: "9:00", Event: "x"}}
	if _, err := svc.Commit(context.Background(), pending); !errors.Is(err, apperrors.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("invalid entry must not be saved")
	}
}

func TestIdsAreStableAcrossReindex(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument()
	doc.Week[0] = []domain.Entry{{BeginTime: "9:00", EndTime: "10:00", Event: "standup"}}
	doc.Day["2026-10-20"] = []domain.Entry{{BeginTime: "8:00", EndTime: "9:00", Event: "train"}}
	svc, _, projector := newService(t, doc)
	ctx := context.Background()

	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	first := map[string]bool{}
	for _, e := range projector.entries {
		first[e.ID] = true
	}
	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("reindex again: %v", err)
	}
	if projector.resets != 2 || len(projector.entries) != 2 {
		t.Fatalf("unexpected projector state: resets=%d entries=%d", projector.resets, len(projector.entries))
	}
	for _, e := range projector.entries {
		if !first[e.ID] {
			t.Fatalf("id %s changed across reindex", e.ID)
		}
	}
}

func TestAgendaAndExport(t *testing.T) {
	t.Parallel()
	doc := domain.NewDocument()
	doc.Week[4] = []domain.Entry{{BeginTime: "9:00", EndTime: "10:00", Event: "retro"}}
	svc, _, _ := newService(t, doc)
	ctx := context.Background()

	occurrences, err := svc.Agenda(ctx, 7)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if len(occurrences) != 1 || occurrences[0].Date.Key() != "2026-10-16" {
		t.Fatalf("unexpected agenda %+v", occurrences)
	}
	if _, err := svc.Agenda(ctx, 0); err == nil {
		t.Fatalf("expected error for zero days")
	}

	var buf bytes.Buffer
	n, err := svc.Export(ctx, &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 1 || buf.Len() == 0 {
		t.Fatalf("unexpected export result n=%d out=%q", n, buf.String())
	}
}

func TestFindRequiresQuery(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, domain.NewDocument())
	if _, err := svc.Find(context.Background(), "  ", 5); err == nil {
		t.Fatalf("expected error for blank query")
	}
}
