package uwimg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uwimg/uwimg/types"

	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption configures Decode, Load and DecodeAnimation.
type DecodeOption func(*decodeConfig)

// AutoOrientation controls whether a decoded JPEG or TIFF is rotated and
// flipped upright according to its EXIF orientation tag. On by default.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	JPEG    = types.JPEG
	PNG     = types.PNG
	GIF     = types.GIF
	TIFF    = types.TIFF
	WEBP    = types.WEBP
	BMP     = types.BMP
)

// ErrUnsupportedFormat is returned for unknown file extensions, for data no
// registered decoder recognizes and for formats that can only be decoded.
var ErrUnsupportedFormat = errors.New("uwimg: unsupported image format")

// FormatFromExtension maps a file extension, with or without the leading dot
// and in any case, to a Format.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return UNKNOWN, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// FormatFromFilename parses image format from the extension of filename.
func FormatFromFilename(filename string) (Format, error) {
	return FormatFromExtension(filepath.Ext(filename))
}

func exif_orientation(data []byte) orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return orientationUnspecified
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Format() != exif_tiff.IntVal {
		return orientationUnspecified
	}
	if v, err := tag.Int(0); err == nil && v > 0 && v < 9 {
		return orientation(v)
	}
	return orientationUnspecified
}

func decode_bytes(data []byte, cfg *decodeConfig) (*Image, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	ans, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	if cfg.autoOrientation && types.FormatFromDecoderName(name).HasExif() {
		ans = fixOrientation(ans, exif_orientation(data))
	}
	return ans, nil
}

// Decode reads a complete still image from r. Data that is not a JPEG, PNG,
// GIF, TIFF, WEBP or BMP image fails with ErrUnsupportedFormat.
func Decode(r io.Reader, opts ...DecodeOption) (*Image, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return decode_bytes(data, &cfg)
}

// Load decodes the image stored in filename, see Decode. Errors opening the
// file wrap ErrIO and all errors mention filename.
//
//	im, err := uwimg.Load("data/dogsmall.jpg")
func Load(filename string, opts ...DecodeOption) (*Image, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()
	ans, err := Decode(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, nil
}

type encodeConfig struct {
	jpegQuality         int
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:         95,
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption configures Encode and Save.
type EncodeOption func(*encodeConfig)

// JPEGQuality sets the JPEG quality, 1 to 100. The default is 95.
func JPEGQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = quality
	}
}

// PNGCompressionLevel sets the zlib effort used for PNG output.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes im to w in the specified format (JPEG, PNG, GIF, TIFF or BMP).
// Samples are clamped to [0, 1] before encoding.
func Encode(w io.Writer, im *Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	if !format.CanEncode() {
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}
	img, err := im.ToImage()
	if err != nil {
		return err
	}

	switch format {
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.jpegQuality})
	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		err = encoder.Encode(w, img)
	case GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case BMP:
		err = bmp.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Save saves the image to file with the specified filename. The format is
// determined from the filename extension. A filename with no extension has
// ".jpg" appended and is saved as JPEG.
//
// Examples:
//
//	// Save the image as JPEG to results/dog4x-nn.jpg
//	err := uwimg.Save(im, "results/dog4x-nn")
//
//	// Save a lossless copy.
//	err := uwimg.Save(im, "results/magnitude.png")
func Save(im *Image, filename string, opts ...EncodeOption) (err error) {
	if filepath.Ext(filename) == "" {
		filename += ".jpg"
	}
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	file, err := fs.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	err = Encode(file, im, f, opts...)
	if errc := file.Close(); err == nil && errc != nil {
		err = fmt.Errorf("%w: %w", ErrIO, errc)
	}
	return err
}
