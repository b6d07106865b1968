package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWrite struct {
	src, dst, value string
}

// fakeStore serves dates from memory and copies files on write
type fakeStore struct {
	dates    map[string]map[DateProperty]string
	writeErr error
	writes   []fakeWrite
}

func (fs *fakeStore) ReadDate(_ context.Context, path string, prop DateProperty) (string, error) {
	return fs.dates[filepath.Base(path)][prop], nil
}

func (fs *fakeStore) WriteDates(_ context.Context, src, dst, value string) error {
	if fs.writeErr != nil {
		return fs.writeErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	fs.writes = append(fs.writes, fakeWrite{src, dst, value})
	return nil
}

// writePNG writes a small valid PNG
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// writeJPEG writes a small JPEG without an EXIF block
func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newTestProcessor(store MetadataStore, hours float64, out *bytes.Buffer) *Processor {
	return &Processor{
		Store:    store,
		Codecs:   defaultCodecs,
		Offset:   OffsetSpec{Hours: hours},
		Reserved: "Corrected",
		Reporter: NewReporter(out),
		Stats:    NewRunStats(),
		Log:      zap.NewNop(),
		Now:      func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestProcessFile(t *testing.T) {
	for i, test := range []struct {
		original   string
		digitized  string
		hours      float64
		expectOld  string
		expectNew  string
		expectStat Status
		expectOut  []string
	}{
		{
			original:   "1996:01:25 23:30:00",
			hours:      24,
			expectOld:  "1996:01:25 23:30:00",
			expectNew:  "1996:01:26 23:30:00",
			expectStat: StatusCorrected,
			expectOut:  []string{".\nDate taken is: 1996:01:25 23:30:00.\n.\n", "New Date: 1996:01:26 23:30:00\n"},
		},
		{
			original:   "not a date",
			digitized:  "January 25, 1996 8:30:00",
			hours:      -8.5,
			expectOld:  "January 25, 1996 8:30:00",
			expectNew:  "1996:01:25 00:00:00",
			expectStat: StatusCorrected,
		},
		{
			digitized:  "1996:01:25 23:30:00",
			hours:      1.0 / 60,
			expectOld:  "1996:01:25 23:30:00",
			expectNew:  "1996:01:25 23:31:00",
			expectStat: StatusCorrected,
		},
		{
			original:   "not a date",
			digitized:  "also not a date",
			hours:      1,
			expectOld:  "not a date",
			expectStat: StatusUnparsable,
			expectOut:  []string{".\nDate taken is invalid: not a date.\n.\n"},
		},
		{
			hours:      1,
			expectStat: StatusMissing,
			expectOut:  []string{".\nDate Taken is missing.\n.\n"},
		},
		{
			original:   "9999:12:31 23:00:00",
			hours:      2,
			expectOld:  "9999:12:31 23:00:00",
			expectNew:  "10000:01:01 01:00:00",
			expectStat: StatusInvalidOffset,
			expectOut:  []string{".\nNew Date taken is invalid: 10000:01:01 01:00:00.\n.\n"},
		},
	} {
		dir := t.TempDir()
		path := filepath.Join(dir, "photo.png")
		writePNG(t, path)

		store := &fakeStore{dates: map[string]map[DateProperty]string{
			"photo.png": {DateTakenOriginal: test.original, DateTakenDigitized: test.digitized},
		}}
		var out bytes.Buffer
		p := newTestProcessor(store, test.hours, &out)

		require.NoError(t, p.ProcessFile(context.Background(), path), "Test %d", i)

		snap := p.Stats.Snapshot()
		if snap.Counts[test.expectStat] != 1 {
			t.Errorf("Test %d: Expected status %s but got counts %v", i, test.expectStat, snap.Counts)
		}
		for _, want := range test.expectOut {
			require.Contains(t, out.String(), want, "Test %d", i)
		}
		require.Contains(t, out.String(), path+"\n", "Test %d", i)

		if test.expectStat != StatusCorrected {
			require.Len(t, p.Failures(), 1, "Test %d", i)
			f := p.Failures()[0]
			require.Equal(t, test.expectOld, f.OldDate, "Test %d", i)
			require.Equal(t, test.expectNew, f.NewDate, "Test %d", i)
			require.Empty(t, store.writes, "Test %d", i)
			require.NoDirExists(t, filepath.Join(dir, "Corrected"), "Test %d", i)
			continue
		}

		require.Empty(t, p.Failures(), "Test %d", i)
		require.Len(t, store.writes, 1, "Test %d", i)
		w := store.writes[0]
		require.Equal(t, path, w.src, "Test %d", i)
		require.Equal(t, filepath.Join(dir, "Corrected", "photo.png"), w.dst, "Test %d", i)
		require.Equal(t, test.expectNew, w.value, "Test %d", i)
		require.FileExists(t, w.dst, "Test %d", i)
	}
}

func TestProcessFileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	writePNG(t, path)

	store := &fakeStore{dates: map[string]map[DateProperty]string{
		"photo.png": {DateTakenOriginal: "1996:01:25 23:30:00"},
	}}
	var out bytes.Buffer
	p := newTestProcessor(store, 1, &out)
	p.DryRun = true

	require.NoError(t, p.ProcessFile(context.Background(), path))
	require.Equal(t, 1, p.Stats.Snapshot().Counts[StatusDryRun])
	require.Empty(t, store.writes)
	require.NoDirExists(t, filepath.Join(dir, "Corrected"))
	require.Contains(t, out.String(), "New Date: 1996:01:26 00:30:00")
}

func TestProcessFileWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	writePNG(t, path)

	store := &fakeStore{
		dates:    map[string]map[DateProperty]string{"photo.png": {DateTakenOriginal: "1996:01:25 23:30:00"}},
		writeErr: errors.New("exiftool exploded"),
	}
	var out bytes.Buffer
	p := newTestProcessor(store, 1, &out)

	require.NoError(t, p.ProcessFile(context.Background(), path))
	require.Len(t, p.Failures(), 1)
	f := p.Failures()[0]
	require.Equal(t, StatusWriteFailed, f.Status)
	require.ErrorIs(t, f.Err, ErrWriteFailed)
	require.Contains(t, out.String(), "Unable to save corrected image")
}

func TestProcessFileUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a jpeg"), 0o644))

	store := &fakeStore{dates: map[string]map[DateProperty]string{
		"photo.jpg": {DateTakenOriginal: "1996:01:25 23:30:00"},
	}}
	var out bytes.Buffer
	p := newTestProcessor(store, 1, &out)

	require.NoError(t, p.ProcessFile(context.Background(), path))
	require.Len(t, p.Failures(), 1)
	require.Equal(t, StatusUnsupported, p.Failures()[0].Status)
	require.Empty(t, store.writes)
}

func TestProcessFileJournal(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))

	store := &fakeStore{dates: map[string]map[DateProperty]string{
		"a.png": {DateTakenOriginal: "1996:01:25 23:30:00"},
	}}
	journalPath := filepath.Join(t.TempDir(), "journal.json")
	req := TraversalRequest{Dir: dir, Reserved: "Corrected"}

	var out bytes.Buffer
	p := newTestProcessor(store, -1, &out)
	p.Journal = NewJournal(journalPath, req, p.Offset, false)

	err := NewWalker(defaultCodecs, nil).Walk(req, func(path string) error {
		return p.ProcessFile(context.Background(), path)
	})
	require.NoError(t, err)
	require.NoError(t, p.Journal.Finish("complete"))

	state, err := LoadJournal(journalPath)
	require.NoError(t, err)
	require.Equal(t, "complete", state.Phase)
	require.Equal(t, -1.0, state.OffsetHours)
	require.Len(t, state.Entries, 2)
	require.Equal(t, StatusCorrected, state.Entries[0].Status)
	require.Equal(t, "1996:01:25 22:30:00", state.Entries[0].NewDate)
	require.Equal(t, filepath.Join(dir, "Corrected", "a.png"), state.Entries[0].Output)
	require.Equal(t, StatusMissing, state.Entries[1].Status)
	require.NotEmpty(t, state.Entries[1].Error)

	// the output folder is not picked up again
	store.writes = nil
	require.NoError(t, NewWalker(defaultCodecs, nil).Walk(TraversalRequest{Dir: dir, Recurse: true, Reserved: "Corrected"}, func(path string) error {
		require.NotEqual(t, "Corrected", filepath.Base(filepath.Dir(path)))
		return nil
	}))
}
