package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignalHandlerShutdownOnce(t *testing.T) {
	var mu sync.Mutex
	var cleanups int
	var codes []int

	sh := NewSignalHandler(zap.NewNop(), func() {
		mu.Lock()
		cleanups++
		mu.Unlock()
	})
	sh.exit = func(code int) {
		mu.Lock()
		codes = append(codes, code)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sh.shutdown(exitFailed)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, cleanups)
	require.Equal(t, []int{exitFailed}, codes)
}

func TestSignalHandlerStartStop(t *testing.T) {
	sh := NewSignalHandler(zap.NewNop(), nil)
	sh.Start()
	require.NotEmpty(t, sh.sigchans)
	sh.Stop()
	require.Empty(t, sh.sigchans)

	// nil cleanup is allowed
	sh.exit = func(int) {}
	sh.shutdown(exitOK)
}
