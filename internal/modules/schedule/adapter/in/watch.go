package in

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"

	"timeline/internal/modules/schedule/dto"
	"timeline/internal/platform/log"
)

type reportPort interface {
	Report(ctx context.Context) (dto.ReportOutput, error)
}

// Watcher prints the report once and then on every tick of a standard
// five-field cron spec until its context is cancelled.
type Watcher struct {
	port reportPort
	out  io.Writer
	spec string
	mu   sync.Mutex
}

func NewWatcher(port reportPort, out io.Writer, spec string) *Watcher {
	return &Watcher{port: port, out: out, spec: spec}
}

func (w *Watcher) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.render(ctx) }); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", w.spec, err)
	}
	w.render(ctx)
	c.Start()
	log.Info("watching schedule", "refresh", w.spec)
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (w *Watcher) render(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	report, err := w.port.Report(ctx)
	if err != nil {
		log.Error("refresh report", err)
		fmt.Fprintf(w.out, "error: %v\n", err)
		return
	}
	if err := WriteReport(w.out, report); err != nil {
		log.Error("write report", err)
	}
}
