package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zapstore/apkmeta/internal/ui"
)

// ExitInterrupted is the exit status after SIGINT or SIGTERM.
const ExitInterrupted = 130

// SignalHandler turns the first SIGINT or SIGTERM into a cancelled context
// so the current file can finish. A second signal exits immediately.
type SignalHandler struct {
	ctx    context.Context
	cancel context.CancelFunc
	sigCh  chan os.Signal
	done   chan struct{}
	stop   sync.Once
	exit   func(code int)
}

// NewSignalHandler starts watching for SIGINT and SIGTERM.
func NewSignalHandler() *SignalHandler {
	h := newSignalHandler(os.Exit)
	signal.Notify(h.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go h.watch()
	return h
}

func newSignalHandler(exit func(int)) *SignalHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &SignalHandler{
		ctx:    ctx,
		cancel: cancel,
		sigCh:  make(chan os.Signal, 1),
		done:   make(chan struct{}),
		exit:   exit,
	}
}

// Context returns a context that is cancelled by the first signal.
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

func (h *SignalHandler) watch() {
	for {
		select {
		case <-h.sigCh:
			if h.ctx.Err() != nil {
				ui.ErrorStatus("Aborted", "second interrupt, exiting now")
				h.exit(ExitInterrupted)
				return
			}
			ui.Status("Interrupted", "stopping after the current file")
			h.cancel()
		case <-h.done:
			return
		}
	}
}

// Stop stops signal delivery and ends the watcher. Safe to call twice.
func (h *SignalHandler) Stop() {
	h.stop.Do(func() {
		signal.Stop(h.sigCh)
		close(h.done)
		h.cancel()
	})
}
