package main

import (
	"os"
	"os/signal"
	"sync/atomic"

	"go.uber.org/zap"
)

// SignalHandler stops a run on SIGINT or SIGTERM. Files already corrected
// stay corrected; the file in progress is abandoned wherever it is.
type SignalHandler struct {
	log     *zap.Logger
	cleanup func()
	exit    func(code int)

	shuttingDown atomic.Bool
	sigchans     []chan os.Signal
}

// NewSignalHandler returns a handler that runs cleanup before exiting
func NewSignalHandler(logger *zap.Logger, cleanup func()) *SignalHandler {
	return &SignalHandler{
		log:     logger,
		cleanup: cleanup,
		exit:    os.Exit,
	}
}

// Start traps the signals this platform supports
func (sh *SignalHandler) Start() {
	sh.trapInterrupt()
	sh.trapSignalsPosix()
}

// Stop releases the signal channels and their goroutines
func (sh *SignalHandler) Stop() {
	for _, ch := range sh.sigchans {
		signal.Stop(ch)
		close(ch)
	}
	sh.sigchans = nil
}

// trapInterrupt handles SIGINT. A second interrupt exits immediately.
func (sh *SignalHandler) trapInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	sh.sigchans = append(sh.sigchans, sig)

	go func() {
		for i := 0; ; i++ {
			if _, ok := <-sig; !ok {
				return
			}
			if i > 0 {
				sh.log.Error("SIGINT: force quit")
				sh.exit(exitFailed)
				return
			}
			sh.log.Warn("SIGINT: stopping after saving the journal")
			go sh.shutdown(exitFailed)
		}
	}()
}

// shutdown runs cleanup once and exits. It is a no-op if the process is
// already exiting.
func (sh *SignalHandler) shutdown(code int) {
	if !sh.shuttingDown.CompareAndSwap(false, true) {
		return
	}
	if sh.cleanup != nil {
		sh.cleanup()
	}
	_ = sh.log.Sync()
	sh.exit(code)
}
