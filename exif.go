package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"
)

// DateProperty names one of the two date taken properties
type DateProperty int

const (
	DateTakenOriginal  DateProperty = iota // EXIF DateTimeOriginal, 0x9003
	DateTakenDigitized                     // EXIF DateTimeDigitized, 0x9004
)

func (p DateProperty) String() string {
	if p == DateTakenDigitized {
		return "digitized"
	}
	return "original"
}

// exifField is the goexif field name for the property
func (p DateProperty) exifField() exif.FieldName {
	if p == DateTakenDigitized {
		return exif.DateTimeDigitized
	}
	return exif.DateTimeOriginal
}

// MetadataStore reads and writes the date taken properties of an image.
// Reads return "" when the property is absent.
type MetadataStore interface {
	ReadDate(ctx context.Context, path string, prop DateProperty) (string, error)
	// WriteDates writes value into both properties of a copy of src at dst,
	// creating them if absent. src is left untouched.
	WriteDates(ctx context.Context, src, dst, value string) error
}

// readExifDate decodes the EXIF block in process. Files without EXIF, or
// with only a damaged block, yield "".
func readExifDate(path string, prop DateProperty) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to open file to attempt reading EXIF: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		if exif.IsCriticalError(err) {
			return "", nil
		}
		if x == nil {
			return "", nil
		}
	}

	tag, err := x.Get(prop.exifField())
	if err != nil {
		return "", nil
	}
	val, err := tag.StringVal()
	if err != nil {
		return "", fmt.Errorf("reading %s date as text: %w", prop, err)
	}
	return strings.TrimRight(val, "\x00 "), nil
}

// exifStore reads with the in-process decoder and falls back to exiftool,
// which also handles formats that carry EXIF outside a JPEG/TIFF block.
// Writing always goes through exiftool.
type exifStore struct {
	tool *exifTool
	log  *zap.Logger
}

func newExifStore(tool *exifTool, logger *zap.Logger) *exifStore {
	return &exifStore{tool: tool, log: logger}
}

func (s *exifStore) ReadDate(ctx context.Context, path string, prop DateProperty) (string, error) {
	val, err := readExifDate(path, prop)
	if err != nil {
		s.log.Debug("decoding EXIF", zap.String("filepath", path), zap.Error(err))
	}
	if val != "" || s.tool == nil {
		return val, nil
	}
	return s.tool.ReadDate(ctx, path, prop)
}

func (s *exifStore) WriteDates(ctx context.Context, src, dst, value string) error {
	if s.tool == nil {
		return fmt.Errorf("%w: exiftool is not available", ErrWriteFailed)
	}
	return s.tool.WriteDates(ctx, src, dst, value)
}
