package in

import (
	"context"

	"timeline/internal/modules/schedule/dto"
	schedulein "timeline/internal/modules/schedule/port/in"
)

// TUIHandler exposes the subset the dashboard drives: the live report and
// the stage/confirm/commit flow.
type TUIHandler struct {
	usecase schedulein.Usecase
}

func NewTUIHandler(usecase schedulein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Report(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx)
}

func (h TUIHandler) Stage(ctx context.Context, command string) (dto.PendingOutput, error) {
	return h.usecase.Stage(ctx, dto.StageInput{Command: command})
}

func (h TUIHandler) Commit(ctx context.Context, pending dto.PendingOutput) (dto.CommitOutput, error) {
	return h.usecase.Commit(ctx, pending.CommitInput())
}
