package in

import (
	"context"

	"timeline/internal/modules/schedule/dto"
)

type Usecase interface {
	Report(ctx context.Context) (dto.ReportOutput, error)
	Stage(ctx context.Context, input dto.StageInput) (dto.PendingOutput, error)
	Commit(ctx context.Context, input dto.CommitInput) (dto.CommitOutput, error)
	Agenda(ctx context.Context, input dto.AgendaInput) ([]dto.OccurrenceOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Find(ctx context.Context, input dto.FindInput) ([]dto.EntryOutput, error)
	Reindex(ctx context.Context) error
}
