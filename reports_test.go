package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReporterOutcome(t *testing.T) {
	for i, test := range []struct {
		outcome Outcome
		expect  string
	}{
		{Outcome{Status: StatusMissing}, ".\nDate Taken is missing.\n.\n"},
		{Outcome{Status: StatusUnparsable, OldDate: "soon"}, ".\nDate taken is invalid: soon.\n.\n"},
		{Outcome{Status: StatusInvalidOffset, NewDate: "10000:01:01 00:00:00"}, ".\nNew Date taken is invalid: 10000:01:01 00:00:00.\n.\n"},
		{Outcome{Status: StatusWriteFailed, Err: errors.New("boom")}, ".\nUnable to save corrected image: boom.\n.\n"},
		{Outcome{Status: StatusCorrected}, ""},
	} {
		var buf bytes.Buffer
		NewReporter(&buf).Outcome(test.outcome)
		if buf.String() != test.expect {
			t.Errorf("Test %d: Expected %q but got %q", i, test.expect, buf.String())
		}
	}
}

func TestReporterUsage(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Usage("offset-hours", defaultCodecs.Extensions())
	out := buf.String()
	require.Contains(t, out, ".  offset-hours [flags] pathname hour_offset [recurse_folders]\n")
	require.Contains(t, out, "recurse_folders is optional true | false parameter")
	require.Contains(t, out, "bmp, gif, jpeg, jpg, png, tif, tiff")
}

func TestReporterSummary(t *testing.T) {
	rs := NewRunStats()
	rs.Record(Outcome{Status: StatusCorrected})
	rs.Record(Outcome{Status: StatusCorrected})
	rs.Record(Outcome{Status: StatusMissing})

	var buf bytes.Buffer
	NewReporter(&buf).Summary(rs.Snapshot(), []Outcome{
		{Path: "/pics/b.jpg", Status: StatusMissing},
	})
	out := buf.String()
	require.Contains(t, out, "Processing Summary")
	require.Contains(t, out, "corrected")
	require.Contains(t, out, "/pics/b.jpg")
	require.NotContains(t, out, string(StatusDryRun))
	require.True(t, strings.Contains(out, "Files not corrected"))
}

func TestRunStats(t *testing.T) {
	rs := NewRunStats()
	for _, s := range []Status{StatusCorrected, StatusDryRun, StatusMissing, StatusWriteFailed, StatusUnparsable} {
		rs.Record(Outcome{Status: s})
	}
	snap := rs.Snapshot()
	require.Equal(t, 5, snap.Total)
	require.Equal(t, 2, snap.Succeeded())
	require.Equal(t, 3, snap.Failed())
	require.True(t, snap.Elapsed >= 0)

	// the snapshot is a copy
	snap.Counts[StatusCorrected] = 100
	require.Equal(t, 1, rs.Snapshot().Counts[StatusCorrected])

	require.True(t, strings.HasPrefix(rs.FormatProgress(), "Processed: 5 | Corrected: 2 | Failed: 3"))
}

func TestRunStatsConcurrentSnapshot(t *testing.T) {
	rs := NewRunStats()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = rs.Snapshot()
		}
	}()
	for i := 0; i < 1000; i++ {
		rs.Record(Outcome{Status: StatusCorrected})
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot goroutine did not finish")
	}
	require.Equal(t, 1000, rs.Snapshot().Total)
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, StatusCorrected, statusOf(nil))
	require.Equal(t, StatusMissing, statusOf(ErrMissingDate))
	require.Equal(t, StatusUnparsable, statusOf(ErrUnparsableDate))
	require.Equal(t, StatusInvalidOffset, statusOf(ErrInvalidOffsetDate))
	require.Equal(t, StatusUnsupported, statusOf(ErrUnsupportedImage))
	require.Equal(t, StatusWriteFailed, statusOf(ErrWriteFailed))
	require.Equal(t, StatusWriteFailed, statusOf(errors.New("anything else")))
}

func TestReporterSummaryDoesNotSplitFrames(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	rs := NewRunStats()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.Framed("Date taken is: %d-%d.", g, i)
			}
		}(g)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			r.Summary(rs.Snapshot(), []Outcome{{Path: "/pics/b.jpg", Status: StatusMissing}})
		}
	}()
	wg.Wait()

	out := buf.String()
	for g := 0; g < 4; g++ {
		for i := 0; i < 50; i++ {
			require.Contains(t, out, fmt.Sprintf(".\nDate taken is: %d-%d.\n.\n", g, i))
		}
	}
	require.Equal(t, 5, strings.Count(out, "Processing Summary"))
}
