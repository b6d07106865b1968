//go:build windows || plan9

package main

func (sh *SignalHandler) trapSignalsPosix() {}
