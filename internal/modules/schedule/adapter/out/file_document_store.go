package out

import (
	"context"
	"errors"
	"fmt"
	"os"

	"timeline/internal/modules/schedule/domain"
	scheduleout "timeline/internal/modules/schedule/port/out"
	apperrors "timeline/internal/platform/errors"
	"timeline/internal/platform/fsutil"
	"timeline/internal/platform/log"
)

// FileDocumentStore keeps the schedule as a single JSON document.
type FileDocumentStore struct {
	path string
}

func NewFileDocumentStore(path string) scheduleout.DocumentStore {
	return &FileDocumentStore{path: path}
}

// Load never fails on a missing, unreadable or unparsable file; those start
// an empty schedule. A parsable file with a malformed partition is an error.
func (s *FileDocumentStore) Load(_ context.Context) (domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("no schedule yet", "path", s.path)
		} else {
			log.Error("read schedule", err, "path", s.path)
		}
		return domain.NewDocument(), nil
	}
	doc, err := domain.ParseDocument(data)
	if errors.Is(err, apperrors.ErrCorruptState) {
		log.Error("discarding unreadable schedule", err, "path", s.path)
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("load %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileDocumentStore) Save(_ context.Context, doc domain.Document) error {
	data, err := domain.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}
