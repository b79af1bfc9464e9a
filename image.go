package uwimg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/kovidgoyal/go-parallel"
	"github.com/twmb/murmur3"
)

var _ = fmt.Print

var (
	// ErrIO means an image could not be read from or written to its destination.
	ErrIO = errors.New("uwimg: i/o error")
	// ErrInvalidDimensions means a requested size or filter parameter is not positive.
	ErrInvalidDimensions = errors.New("uwimg: invalid dimensions")
	// ErrShapeMismatch means two images (or an image and a filter) do not have compatible shapes.
	ErrShapeMismatch = errors.New("uwimg: shape mismatch")
	// ErrDimensionMismatch means a filter is larger than the image it is applied to.
	ErrDimensionMismatch = errors.New("uwimg: filter larger than image")
)

// Image is an in-memory floating point image. Samples are stored channel
// major: the sample for channel c at (x, y) is Data[x + W*y + W*H*c].
type Image struct {
	W, H, C int
	Data    []float32
}

// NewImage returns a zero filled image of the specified size. It panics if
// any dimension is negative, use NewImageChecked for untrusted sizes.
func NewImage(w, h, c int) *Image {
	if w < 0 || h < 0 || c < 0 {
		panic(fmt.Sprintf("uwimg: negative image dimensions: %dx%dx%d", w, h, c))
	}
	return &Image{W: w, H: h, C: c, Data: make([]float32, w*h*c)}
}

func NewImageChecked(w, h, c int) (*Image, error) {
	if w < 1 || h < 1 || c < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, w, h, c)
	}
	return NewImage(w, h, c), nil
}

func clamp_index(v, limit int) int {
	return max(0, min(v, limit-1))
}

// Get returns the sample at (x, y) in channel c. Coordinates outside the
// image are clamped to the nearest edge.
func (im *Image) Get(x, y, c int) float32 {
	x, y, c = clamp_index(x, im.W), clamp_index(y, im.H), clamp_index(c, im.C)
	return im.Data[x+im.W*y+im.W*im.H*c]
}

// Set stores v at (x, y) in channel c. Writes outside the image are ignored.
func (im *Image) Set(x, y, c int, v float32) {
	if x < 0 || y < 0 || c < 0 || x >= im.W || y >= im.H || c >= im.C {
		return
	}
	im.Data[x+im.W*y+im.W*im.H*c] = v
}

// Channel returns the samples of channel c. The returned slice shares
// storage with the image.
func (im *Image) Channel(c int) []float32 {
	sz := im.W * im.H
	return im.Data[c*sz : (c+1)*sz : (c+1)*sz]
}

func (im *Image) Clone() *Image {
	ans := *im
	ans.Data = make([]float32, len(im.Data))
	copy(ans.Data, im.Data)
	return &ans
}

func (im *Image) SameShape(o *Image) bool {
	return im.W == o.W && im.H == o.H && im.C == o.C
}

func (im *Image) String() string {
	return fmt.Sprintf("Image{%dx%dx%d}", im.W, im.H, im.C)
}

// Bounds returns the pixel rectangle covered by the image, with origin at (0, 0).
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.W, im.H)
}

// ColorModel returns color.NRGBA64Model, see At.
func (im *Image) ColorModel() color.Model { return color.NRGBA64Model }

// At returns the pixel at (x, y) with samples clamped to [0, 1]. One channel
// images read as gray, two channel images as gray with alpha and three
// channel images as opaque RGB. This makes *Image an image.Image.
func (im *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(im.Bounds())) || im.C < 1 {
		return color.NRGBA64{}
	}
	s := func(c int) uint16 { return uint16(clamp01(im.Get(x, y, c))*0xffff + 0.5) }
	switch im.C {
	case 1:
		v := s(0)
		return color.NRGBA64{R: v, G: v, B: v, A: 0xffff}
	case 2:
		v := s(0)
		return color.NRGBA64{R: v, G: v, B: v, A: s(1)}
	case 3:
		return color.NRGBA64{R: s(0), G: s(1), B: s(2), A: 0xffff}
	}
	return color.NRGBA64{R: s(0), G: s(1), B: s(2), A: s(3)}
}

// MinMax returns the smallest and largest sample in the image. For an empty
// image it returns +Inf, -Inf.
func (im *Image) MinMax() (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range im.Data {
		lo, hi = min(lo, v), max(hi, v)
	}
	return
}

// Fingerprint returns a hash of the image shape and the exact bits of every
// sample. Two images have the same fingerprint only if they are identical.
func (im *Image) Fingerprint() uint64 {
	h := murmur3.New64()
	buf := make([]byte, 0, 4096)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(im.W))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(im.H))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(im.C))
	for _, v := range im.Data {
		if len(buf)+4 > cap(buf) {
			_, _ = h.Write(buf)
			buf = buf[:0]
		}
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// run_rows calls f over disjoint row ranges in [0, height) using all
// available CPUs.
func run_rows(height int, f func(start, limit int)) error {
	if height < 1 {
		return nil
	}
	return parallel.Run_in_parallel_over_range(0, f, 0, height)
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	return max(0, min(v, 1))
}

type opaquer interface {
	Opaque() bool
}

func is_gray_model(m color.Model) bool {
	return m == color.GrayModel || m == color.Gray16Model
}

// FromImage converts img into an *Image with samples in [0, 1]. Grayscale
// images produce one channel, images that are not fully opaque produce four
// (R, G, B, non-premultiplied A) and everything else produces three.
func FromImage(img image.Image) (*Image, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	nc := 3
	switch {
	case is_gray_model(img.ColorModel()):
		nc = 1
	default:
		if o, ok := img.(opaquer); !ok || !o.Opaque() {
			nc = 4
		}
	}
	ans := NewImage(width, height, nc)
	plane := width * height
	var f func(start, limit int)
	switch src := img.(type) {
	case *image.Gray:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				o := src.PixOffset(b.Min.X, b.Min.Y+y)
				row := src.Pix[o : o+width]
				out := ans.Data[y*width : (y+1)*width]
				for x, v := range row {
					out[x] = float32(v) / 255
				}
			}
		}
	case *image.RGBA:
		if nc != 3 {
			// premultiplied, let the generic path convert
			break
		}
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := range width {
					s := row[4*x : 4*x+3 : 4*x+3]
					i := y*width + x
					ans.Data[i] = float32(s[0]) / 255
					ans.Data[i+plane] = float32(s[1]) / 255
					ans.Data[i+2*plane] = float32(s[2]) / 255
				}
			}
		}
	case *image.NRGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := range width {
					s := row[4*x : 4*x+4 : 4*x+4]
					i := y*width + x
					for c := range nc {
						ans.Data[i+c*plane] = float32(s[c]) / 255
					}
				}
			}
		}
	}
	if f == nil {
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				for x := range width {
					c := color.NRGBA64Model.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA64)
					i := y*width + x
					if nc == 1 {
						ans.Data[i] = float32(c.R) / 0xffff
						continue
					}
					ans.Data[i] = float32(c.R) / 0xffff
					ans.Data[i+plane] = float32(c.G) / 0xffff
					ans.Data[i+2*plane] = float32(c.B) / 0xffff
					if nc == 4 {
						ans.Data[i+3*plane] = float32(c.A) / 0xffff
					}
				}
			}
		}
	}
	if err := run_rows(height, f); err != nil {
		return nil, err
	}
	return ans, nil
}

// ToImage converts im into a standard 8-bit image suitable for encoding.
// Samples are clamped to [0, 1]. One channel images become *image.Gray,
// three channel images *image.RGBA with opaque alpha and four channel images
// *image.NRGBA. The concrete types all have fast paths in the standard
// encoders.
func (im *Image) ToImage() (ans image.Image, err error) {
	r := im.Bounds()
	plane := im.W * im.H
	var f func(start, limit int)
	switch im.C {
	case 1:
		d := image.NewGray(r)
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y : d.Stride*y+im.W]
				for x := range row {
					row[x] = to8(im.Data[y*im.W+x])
				}
			}
		}
	case 3:
		d := image.NewRGBA(r)
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y:]
				for x := range im.W {
					i := y*im.W + x
					s := row[4*x : 4*x+4 : 4*x+4]
					s[0], s[1], s[2], s[3] = to8(im.Data[i]), to8(im.Data[i+plane]), to8(im.Data[i+2*plane]), 0xff
				}
			}
		}
	case 4:
		d := image.NewNRGBA(r)
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y:]
				for x := range im.W {
					i := y*im.W + x
					s := row[4*x : 4*x+4 : 4*x+4]
					for c := range 4 {
						s[c] = to8(im.Data[i+c*plane])
					}
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: cannot convert a %d channel image to a standard image", ErrShapeMismatch, im.C)
	}
	if err = run_rows(im.H, f); err != nil {
		return nil, err
	}
	return ans, nil
}
