package in

import (
	"context"
	"io"

	"timeline/internal/modules/schedule/dto"
	schedulein "timeline/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx)
}

func (h CLIHandler) Stage(ctx context.Context, command string) (dto.PendingOutput, error) {
	return h.usecase.Stage(ctx, dto.StageInput{Command: command})
}

func (h CLIHandler) Commit(ctx context.Context, pending dto.PendingOutput) (dto.CommitOutput, error) {
	return h.usecase.Commit(ctx, pending.CommitInput())
}

func (h CLIHandler) Agenda(ctx context.Context, days int) ([]dto.OccurrenceOutput, error) {
	return h.usecase.Agenda(ctx, dto.AgendaInput{Days: days})
}

func (h CLIHandler) Export(ctx context.Context, w io.Writer) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Out: w})
}

func (h CLIHandler) Find(ctx context.Context, query string, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.Find(ctx, dto.FindInput{Query: query, Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
