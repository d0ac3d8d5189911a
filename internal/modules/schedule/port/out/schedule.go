package out

import (
	"context"
	"io"
	"time"

	"timeline/internal/modules/schedule/domain"
)

type DocumentStore interface {
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) error
}

type EntryProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, entries []domain.IndexedEntry) error
	Search(ctx context.Context, query string, limit int) ([]domain.IndexedEntry, error)
}

type CalendarExporter interface {
	Export(ctx context.Context, doc domain.Document, anchor time.Time, w io.Writer) (int, error)
}
