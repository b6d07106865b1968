package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Reporter writes the per-file trace to the console. Messages are framed
// by lines holding a single "." so they stand out between file paths. The
// signal handler prints the summary from its own goroutine, so every method
// writes under mu.
type Reporter struct {
	out io.Writer
	mu  sync.Mutex
}

// NewReporter returns a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Path announces the file about to be processed
func (r *Reporter) Path(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, path)
}

// Framed writes a message between two "." lines
func (r *Reporter) Framed(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, ".")
	fmt.Fprintf(r.out, format+"\n", args...)
	fmt.Fprintln(r.out, ".")
}

// Line writes an unframed message
func (r *Reporter) Line(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Outcome reports how a file ended up
func (r *Reporter) Outcome(o Outcome) {
	switch o.Status {
	case StatusMissing:
		r.Framed("Date Taken is missing.")
	case StatusUnparsable:
		r.Framed("Date taken is invalid: %s.", o.OldDate)
	case StatusInvalidOffset:
		r.Framed("New Date taken is invalid: %s.", o.NewDate)
	case StatusUnsupported:
		r.Framed("Image cannot be decoded: %v.", o.Err)
	case StatusWriteFailed:
		r.Framed("Unable to save corrected image: %v.", o.Err)
	case StatusDryRun:
		r.Framed("Dry run, not saved.")
	}
}

// Usage prints the command line help
func (r *Reporter) Usage(name string, exts []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := []string{
		".",
		"OffsetHours, offsets the date taken of images by a number of hours.",
		".",
		"Usage:",
		".",
		".  " + name + " [flags] pathname hour_offset [recurse_folders]",
		".",
		"Where:",
		".",
		".  pathname is the root of the tree to be scanned, a single image or",
		".    a folder followed by a wildcard such as *.JPG.",
		".  hour_offset is the number of hours to offset the date taken by",
		".    and may be fractional or negative, but not zero.",
		".  recurse_folders is optional true | false parameter",
		".    to include sub-folders or not (default is false).",
		".",
		"Images with these extensions are corrected: " + strings.Join(exts, ", "),
		".",
	}
	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}
}

// Summary prints the end of run table and the files that failed
func (r *Reporter) Summary(s StatsSnapshot, failures []Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "\n📊 Processing Summary:\n")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Status", "Files"})
	table.SetBorder(true)
	for _, status := range statusOrder {
		if n := s.Counts[status]; n > 0 {
			table.Append([]string{string(status), strconv.Itoa(n)})
		}
	}
	table.Append([]string{"total", strconv.Itoa(s.Total)})
	table.Render()

	fmt.Fprintf(r.out, "⏱️  Total time: %v\n", s.Elapsed.Round(time.Millisecond))

	if len(failures) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n❌ Files not corrected:\n")
	failTable := tablewriter.NewWriter(r.out)
	failTable.SetHeader([]string{"File", "Status", "Date Taken"})
	failTable.SetBorder(true)
	for _, o := range failures {
		failTable.Append([]string{o.Path, string(o.Status), o.OldDate})
	}
	failTable.Render()
}
