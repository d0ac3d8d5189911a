package service

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"timeline/internal/modules/schedule/domain"
	scheduleout "timeline/internal/modules/schedule/port/out"
	"timeline/internal/platform/clock"
	"timeline/internal/platform/id"
	"timeline/internal/platform/log"
)

type ScheduleService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     scheduleout.DocumentStore
	projector scheduleout.EntryProjector
	exporter  scheduleout.CalendarExporter
	messages  map[string][]string
}

func NewScheduleService(
	clock clock.Clock,
	idGen id.Generator,
	store scheduleout.DocumentStore,
	projector scheduleout.EntryProjector,
	exporter scheduleout.CalendarExporter,
	messages map[string][]string,
) *ScheduleService {
	return &ScheduleService{clock: clock, idGen: idGen, store: store, projector: projector, exporter: exporter, messages: messages}
}

// Report builds today's status and picks a message for its state. The
// pick is seeded by the report instant.
func (s *ScheduleService) Report(ctx context.Context) (domain.Report, string, error) {
	now := s.clock.Now()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.Report{}, "", err
	}
	report, err := domain.BuildReport(now, doc)
	if err != nil {
		return domain.Report{}, "", err
	}
	return report, s.pickMessage(report), nil
}

func (s *ScheduleService) pickMessage(report domain.Report) string {
	variants := s.messages[string(report.State)]
	if len(variants) == 0 {
		return ""
	}
	seed := uint64(report.Now.UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>32))
	return variants[rng.IntN(len(variants))]
}

// Stage parses an add command against the current clock without touching
// the store.
func (s *ScheduleService) Stage(_ context.Context, command string) (domain.Pending, error) {
	return domain.ParseCommand(command, s.clock.Now())
}

// Commit appends a confirmed entry and persists the document. A failed
// index refresh is logged; the document stays authoritative.
func (s *ScheduleService) Commit(ctx context.Context, pending domain.Pending) (domain.Document, error) {
	if err := pending.Entry.Validate(); err != nil {
		return domain.Document{}, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := pending.Apply(&doc); err != nil {
		return domain.Document{}, err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return domain.Document{}, err
	}
	log.Info("entry added", "kind", pending.Kind, "entry", pending.Describe())
	if err := s.project(ctx, doc); err != nil {
		log.Error("refresh entry index", err)
	}
	return doc, nil
}

func (s *ScheduleService) Agenda(ctx context.Context, days int) ([]domain.Occurrence, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Agenda(s.clock.Now(), days, doc)
}

func (s *ScheduleService) Export(ctx context.Context, w io.Writer) (int, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return s.exporter.Export(ctx, doc, s.clock.Now(), w)
}

func (s *ScheduleService) Find(ctx context.Context, query string, limit int) ([]domain.IndexedEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.projector.Search(ctx, query, limit)
}

func (s *ScheduleService) Reindex(ctx context.Context) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	return s.project(ctx, doc)
}

func (s *ScheduleService) project(ctx context.Context, doc domain.Document) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	entries := domain.Flatten(doc)
	for i := range entries {
		entries[i].ID = s.entryID(entries[i])
	}
	return s.projector.Upsert(ctx, entries)
}

func (s *ScheduleService) entryID(e domain.IndexedEntry) string {
	return s.idGen.For(string(e.Kind) + "/" + e.Slot() + "/" + strconv.Itoa(e.Position))
}
