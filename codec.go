package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// codec describes how an image extension is encoded
type codec struct {
	MIME   string
	Format string // name registered with the image package
}

// codecTable maps a lower-cased extension without the dot to its codec
type codecTable map[string]codec

// defaultCodecs are the image types that are corrected
var defaultCodecs = codecTable{
	"jpg":  {MIME: "image/jpeg", Format: "jpeg"},
	"jpeg": {MIME: "image/jpeg", Format: "jpeg"},
	"png":  {MIME: "image/png", Format: "png"},
	"gif":  {MIME: "image/gif", Format: "gif"},
	"bmp":  {MIME: "image/bmp", Format: "bmp"},
	"tif":  {MIME: "image/tiff", Format: "tiff"},
	"tiff": {MIME: "image/tiff", Format: "tiff"},
}

// Lookup returns the codec for a file by its extension
func (ct codecTable) Lookup(path string) (codec, bool) {
	c, ok := ct[extensionOf(path)]
	return c, ok
}

// Supported reports whether a file has a supported image extension
func (ct codecTable) Supported(path string) bool {
	_, ok := ct.Lookup(path)
	return ok
}

// Extensions lists the supported extensions, sorted
func (ct codecTable) Extensions() []string {
	exts := make([]string, 0, len(ct))
	for ext := range ct {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Probe decodes the image header to make sure the file can be re-encoded as
// its extension says. The detected format is returned when it differs.
func (ct codecTable) Probe(path string) (codec, string, error) {
	c, ok := ct.Lookup(path)
	if !ok {
		return codec{}, "", fmt.Errorf("%w: no codec for %s", ErrUnsupportedImage, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return c, "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return c, "", fmt.Errorf("%w: decoding %s as %s: %v", ErrUnsupportedImage, path, c.MIME, err)
	}
	if format != c.Format {
		return c, format, nil
	}
	return c, "", nil
}
