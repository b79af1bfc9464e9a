package types

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"apng": PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "UNKNOWN"
}

// CanEncode reports whether images can be written in this format. WEBP is
// decode only.
func (f Format) CanEncode() bool {
	switch f {
	case JPEG, PNG, GIF, TIFF, BMP:
		return true
	}
	return false
}

// HasExif reports whether files in this format may carry an EXIF block that
// the decoder can read.
func (f Format) HasExif() bool {
	return f == JPEG || f == TIFF
}

// FormatFromDecoderName maps the names registered with image.RegisterFormat
// to a Format.
func FormatFromDecoderName(name string) Format {
	if f, ok := FormatExts[strings.ToLower(name)]; ok {
		return f
	}
	return UNKNOWN
}
