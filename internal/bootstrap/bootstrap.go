package bootstrap

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	scheduleinadapter "timeline/internal/modules/schedule/adapter/in"
	scheduleoutadapter "timeline/internal/modules/schedule/adapter/out"
	scheduleservice "timeline/internal/modules/schedule/service"
	scheduleusecase "timeline/internal/modules/schedule/usecase"
	"timeline/internal/platform/clock"
	"timeline/internal/platform/config"
	"timeline/internal/platform/id"
	"timeline/internal/platform/log"
	uiapp "timeline/internal/ui/app"
)

type App struct {
	ScheduleCLI scheduleinadapter.CLIHandler
	ScheduleTUI scheduleinadapter.TUIHandler
	Settings    *config.Settings

	projector *scheduleoutadapter.SQLiteEntryProjector
}

// LoadSettings reads the settings file, falling back to defaults when the
// first-run write fails.
func LoadSettings(cfg config.Config) (*config.Settings, error) {
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		if settings == nil {
			return nil, err
		}
		log.Error("write default settings", err, "path", cfg.SettingsPath)
	}
	return settings, nil
}

func New(cfg config.Config, settings *config.Settings) (*App, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	clk := clock.SystemClock{}
	ids := id.Stable{}

	projector, err := scheduleoutadapter.NewSQLiteEntryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new entry projector: %w", err)
	}
	scheduleSvc := scheduleservice.NewScheduleService(
		clk,
		ids,
		scheduleoutadapter.NewFileDocumentStore(cfg.DataPath),
		projector,
		scheduleoutadapter.NewICSExporter(ids),
		settings.Messages,
	)
	scheduleUC := scheduleusecase.NewInteractor(scheduleSvc)
	log.Debug("app ready", "data", cfg.DataPath, "db", cfg.DBPath)

	return &App{
		ScheduleCLI: scheduleinadapter.NewCLIHandler(scheduleUC),
		ScheduleTUI: scheduleinadapter.NewTUIHandler(scheduleUC),
		Settings:    settings,
		projector:   projector,
	}, nil
}

func (a *App) Close() error {
	if a.projector == nil {
		return nil
	}
	return a.projector.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ScheduleTUI, time.Second)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
