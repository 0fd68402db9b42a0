// Package watch is the live countdown view.
package watch

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/query"
)

// Watch runs the live view until the user quits.
type Watch struct {
	Service      *app.Service
	TickInterval time.Duration
	Debounce     time.Duration
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("can not watch, no service")
	}
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("watch needs an interactive terminal; try `cinetime movies`")
	}

	ticker := clock.NewTicker(w.Service.Clock, w.TickInterval)
	search := query.New(w.Service.Clock, w.Debounce)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if ok, err := w.Service.WatchList(ctx); err != nil {
		w.Service.Log.Warnw("watch: can not follow saved list changes", "error", err)
	} else if !ok {
		w.Service.Log.Debugw("watch: backend does not report changes")
	}

	m := New(ctx, w.Service, ticker, search)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
