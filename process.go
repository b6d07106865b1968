package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Processor corrects the date taken of one image at a time
type Processor struct {
	Store    MetadataStore
	Codecs   codecTable
	Offset   OffsetSpec
	Reserved string // output subfolder name
	DryRun   bool

	Reporter *Reporter
	Stats    *RunStats
	Journal  *Journal
	Log      *zap.Logger

	// Now supplies the current year for two-digit year expansion
	Now func() time.Time

	failures []Outcome
}

// Failures returns every outcome that did not end in a correction
func (p *Processor) Failures() []Outcome {
	return p.failures
}

// ProcessFile reads, parses, offsets and writes the date taken of one image.
// Failures are reported and recorded; only a journal write error is
// returned, since a run that cannot keep its journal should stop.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	start := time.Now()
	logger := p.Log.With(zap.String("filepath", path))

	p.Reporter.Path(path)
	o := p.process(ctx, path, logger)
	o.Duration = time.Since(start)
	p.Reporter.Outcome(o)

	if o.Status.Succeeded() {
		logger.Debug("corrected date taken",
			zap.String("old", o.OldDate),
			zap.String("new", o.NewDate),
			zap.String("output", o.Output),
			zap.Duration("duration", o.Duration))
	} else {
		p.failures = append(p.failures, o)
		logger.Warn("file not corrected", zap.String("status", string(o.Status)), zap.Error(o.Err))
		if hint := permissionHint(o.Err); hint != "" {
			logger.Info(hint)
		}
	}

	p.Stats.Record(o)
	return p.Journal.Record(o)
}

func (p *Processor) process(ctx context.Context, path string, logger *zap.Logger) Outcome {
	o := Outcome{Path: path}
	fail := func(err error) Outcome {
		o.Err = err
		o.Status = statusOf(err)
		return o
	}

	raw, value, err := p.dateTaken(ctx, path, logger)
	o.OldDate = raw
	if err != nil {
		return fail(err)
	}
	p.Reporter.Framed("Date taken is: %s.", raw)

	shifted, err := ApplyOffset(value, p.Offset)
	o.NewDate = shifted.String()
	if err != nil {
		return fail(err)
	}
	p.Reporter.Line("New Date: %s", o.NewDate)

	c, detected, err := p.Codecs.Probe(path)
	if err != nil {
		return fail(err)
	}
	if detected != "" {
		logger.Warn("image content does not match its extension",
			zap.String("mime", c.MIME),
			zap.String("detected", detected))
	}

	if p.DryRun {
		o.Status = StatusDryRun
		return o
	}

	dir := filepath.Join(filepath.Dir(path), p.Reserved)
	if err := ensureOutputDir(dir); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteFailed, err))
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if err := p.Store.WriteDates(ctx, path, dst, o.NewDate); err != nil {
		if isPermissionError(err) {
			err = &PermissionError{Path: dst, Operation: "write", Err: err}
		}
		if !errors.Is(err, ErrWriteFailed) {
			err = fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
		return fail(err)
	}

	o.Output = dst
	o.Status = StatusCorrected
	return o
}

// dateTaken picks the property to correct. The original property wins if it
// parses, then the digitized one. When neither parses, the first non-empty
// one is returned with the parse error so it can be reported.
func (p *Processor) dateTaken(ctx context.Context, path string, logger *zap.Logger) (string, CalendarValue, error) {
	year := p.Now().Year()

	var firstRaw string
	var firstErr error
	for _, prop := range []DateProperty{DateTakenOriginal, DateTakenDigitized} {
		raw, err := p.Store.ReadDate(ctx, path, prop)
		if err != nil {
			logger.Debug("reading date taken", zap.Stringer("property", prop), zap.Error(err))
			continue
		}
		if raw == "" {
			continue
		}
		value, err := ParseDateTaken(raw, year)
		if err == nil {
			logger.Debug("using date taken", zap.Stringer("property", prop), zap.String("value", raw))
			return raw, value, nil
		}
		if firstRaw == "" {
			firstRaw, firstErr = raw, err
		}
	}

	if firstRaw == "" {
		return "", CalendarValue{}, ErrMissingDate
	}
	return firstRaw, CalendarValue{}, firstErr
}
