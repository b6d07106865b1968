//go:build !windows && !plan9

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// trapSignalsPosix captures POSIX-only signals
func (sh *SignalHandler) trapSignalsPosix() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT)
	sh.sigchans = append(sh.sigchans, sigchan)

	go func() {
		for sig := range sigchan {
			switch sig {
			case unix.SIGQUIT:
				sh.log.Warn("SIGQUIT: quitting process immediately")
				sh.exit(exitFailed)
				return

			case unix.SIGTERM, unix.SIGHUP:
				sh.log.Warn(sig.String() + ": saving the journal, then terminating")
				go sh.shutdown(exitFailed)
			}
		}
	}()
}
