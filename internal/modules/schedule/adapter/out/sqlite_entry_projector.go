package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timeline/internal/modules/schedule/domain"
	scheduleout "timeline/internal/modules/schedule/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteEntryProjector mirrors the document into a searchable table. It
// is rebuilt from the document and never read back into it.
type SQLiteEntryProjector struct {
	db *sql.DB
}

func NewSQLiteEntryProjector(dbPath string) (*SQLiteEntryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteEntryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ scheduleout.EntryProjector = (*SQLiteEntryProjector)(nil)

func (s *SQLiteEntryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  weekday INTEGER NOT NULL,
  date_key TEXT NOT NULL,
  position INTEGER NOT NULL,
  begin_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  event TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteEntryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) Upsert(ctx context.Context, entries []domain.IndexedEntry) error {
	const stmt = `
INSERT INTO entries (id, kind, weekday, date_key, position, begin_time, end_time, event, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  weekday=excluded.weekday,
  date_key=excluded.date_key,
  position=excluded.position,
  begin_time=excluded.begin_time,
  end_time=excluded.end_time,
  event=excluded.event,
  updated_at=excluded.updated_at;
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updated := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, stmt,
			e.ID,
			string(e.Kind),
			e.Weekday,
			e.DateKey,
			e.Position,
			e.Entry.BeginTime,
			e.Entry.EndTime,
			e.Entry.Event,
			updated,
		)
		if err != nil {
			return fmt.Errorf("upsert entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// Search matches query as a case-insensitive substring of the event label.
func (s *SQLiteEntryProjector) Search(ctx context.Context, query string, limit int) ([]domain.IndexedEntry, error) {
	const stmt = `
SELECT id, kind, weekday, date_key, position, begin_time, end_time, event
FROM entries
WHERE event LIKE ? ESCAPE '\'
ORDER BY kind DESC, weekday, date_key, position
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, stmt, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	defer rows.Close()

	var out []domain.IndexedEntry
	for rows.Next() {
		var e domain.IndexedEntry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Weekday, &e.DateKey, &e.Position, &e.Entry.BeginTime, &e.Entry.EndTime, &e.Entry.Event); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = domain.PendingKind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
