package usecase

import (
	"context"

	"timeline/internal/modules/schedule/domain"
	"timeline/internal/modules/schedule/dto"
	schedulein "timeline/internal/modules/schedule/port/in"
	"timeline/internal/modules/schedule/service"
)

const clockLayout = "15:04"

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Report(ctx context.Context) (dto.ReportOutput, error) {
	report, message, err := i.svc.Report(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return dto.ReportOutput{
		Now:     report.Now,
		State:   string(report.State),
		Message: message,
		Ongoing: toEventOutputs(report.Ongoing),
		Waiting: toEventOutputs(report.Waiting),
	}, nil
}

func (i *Interactor) Stage(ctx context.Context, input dto.StageInput) (dto.PendingOutput, error) {
	pending, err := i.svc.Stage(ctx, input.Command)
	if err != nil {
		return dto.PendingOutput{}, err
	}
	return dto.PendingOutput{
		Kind:      string(pending.Kind),
		Weekday:   pending.Weekday,
		DateKey:   pending.DateKey,
		BeginTime: pending.Entry.BeginTime,
		EndTime:   pending.Entry.EndTime,
		Event:     pending.Entry.Event,
		Summary:   pending.Describe(),
	}, nil
}

func (i *Interactor) Commit(ctx context.Context, input dto.CommitInput) (dto.CommitOutput, error) {
	pending := domain.Pending{
		Kind:    domain.PendingKind(input.Kind),
		Weekday: input.Weekday,
		DateKey: input.DateKey,
		Entry:   domain.Entry{BeginTime: input.BeginTime, EndTime: input.EndTime, Event: input.Event},
	}
	doc, err := i.svc.Commit(ctx, pending)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	weekly, dated := doc.Count()
	return dto.CommitOutput{Summary: pending.Describe(), Weekly: weekly, Dated: dated}, nil
}

func (i *Interactor) Agenda(ctx context.Context, input dto.AgendaInput) ([]dto.OccurrenceOutput, error) {
	occurrences, err := i.svc.Agenda(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OccurrenceOutput, 0, len(occurrences))
	for _, occ := range occurrences {
		out = append(out, dto.OccurrenceOutput{
			Date:    occ.Date.Key(),
			Weekday: domain.WeekdayName(occ.Date.Weekday()),
			Begin:   occ.Begin.Format(clockLayout),
			End:     occ.End.Format(clockLayout),
			Label:   occ.Label,
			Weekly:  occ.Weekly,
		})
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	n, err := i.svc.Export(ctx, input.Out)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Events: n}, nil
}

func (i *Interactor) Find(ctx context.Context, input dto.FindInput) ([]dto.EntryOutput, error) {
	entries, err := i.svc.Find(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EntryOutput{
			ID:        e.ID,
			Kind:      string(e.Kind),
			Slot:      e.Slot(),
			BeginTime: e.Entry.BeginTime,
			EndTime:   e.Entry.EndTime,
			Event:     e.Entry.Event,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toEventOutputs(items []domain.ReportItem) []dto.EventOutput {
	out := make([]dto.EventOutput, 0, len(items))
	for _, item := range items {
		out = append(out, dto.EventOutput{
			Label:         item.Label,
			Begin:         item.Begin.Format(clockLayout),
			End:           item.End.Format(clockLayout),
			Countdown:     item.Countdown,
			CountdownText: domain.FormatCountdown(item.Countdown),
		})
	}
	return out
}
