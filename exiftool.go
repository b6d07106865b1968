package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// exifTool runs the exiftool binary
type exifTool struct {
	bin string
}

// findExifTool resolves the exiftool binary on PATH
func findExifTool(bin string) (*exifTool, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("exiftool not found (%s): %w", bin, err)
	}
	return &exifTool{bin: path}, nil
}

// tagName is the exiftool tag for the property. CreateDate is exiftool's
// name for DateTimeDigitized.
func (p DateProperty) tagName() string {
	if p == DateTakenDigitized {
		return "CreateDate"
	}
	return "DateTimeOriginal"
}

// ReadDate reads one property. exiftool prints "-" for a missing tag in
// tab-separated mode.
func (et *exifTool) ReadDate(ctx context.Context, path string, prop DateProperty) (string, error) {
	cmd := exec.CommandContext(ctx, et.bin,
		"-"+prop.tagName(),
		"-T", // Tab-separated output
		path)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("exiftool failed reading %s: %w", prop, err)
	}

	val := strings.TrimSpace(string(output))
	if val == "-" {
		return "", nil
	}
	return val, nil
}

// WriteDates writes both date taken properties into a new copy of src at
// dst. Any previous copy at dst is replaced.
func (et *exifTool) WriteDates(ctx context.Context, src, dst, value string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing previous copy: %v", ErrWriteFailed, err)
	}

	cmd := exec.CommandContext(ctx, et.bin,
		fmt.Sprintf("-DateTimeOriginal=%s", value),
		fmt.Sprintf("-CreateDate=%s", value),
		"-o", dst,
		src)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: exiftool update failed: %v, output: %s", ErrWriteFailed, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
