package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
)

// notifyContext returns a context canceled by the first shutdown signal, so
// workers stop picking up files. A second signal calls force: a preview stuck
// in Chrome would otherwise hold the batch until its timeout.
// Call stop to release the signal handler.
func notifyContext(parent context.Context, w io.Writer, force func()) (context.Context, context.CancelFunc) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, shutdownSignals...)

	ctx, stop := watchSignals(parent, sigs, w, force)
	return ctx, func() {
		signal.Stop(sigs)
		stop()
	}
}

// watchSignals cancels the returned context on the first value from sigs and
// calls force on the second. stop is idempotent.
func watchSignals(parent context.Context, sigs <-chan os.Signal, w io.Writer, force func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigs:
			fmt.Fprintf(w, "mdconv: %v, stopping (repeat to exit now)\n", sig)
			cancel()
		case <-done:
			return
		}

		select {
		case <-sigs:
			force()
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			close(done)
			cancel()
		})
	}
}
