package main

import "errors"

// Per-file failures. Each one is reported and the file is skipped.
var (
	ErrMissingDate       = errors.New("date taken is missing")
	ErrUnparsableDate    = errors.New("date taken is invalid")
	ErrInvalidDate       = errors.New("invalid calendar value")
	ErrInvalidOffsetDate = errors.New("new date taken is invalid")
	ErrWriteFailed       = errors.New("unable to write corrected image")
	ErrUnsupportedImage  = errors.New("unsupported image")
)

// statusOf maps a processing error to the status recorded for the file
func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusCorrected
	case errors.Is(err, ErrMissingDate):
		return StatusMissing
	case errors.Is(err, ErrUnparsableDate):
		return StatusUnparsable
	case errors.Is(err, ErrInvalidOffsetDate):
		return StatusInvalidOffset
	case errors.Is(err, ErrUnsupportedImage):
		return StatusUnsupported
	default:
		return StatusWriteFailed
	}
}
