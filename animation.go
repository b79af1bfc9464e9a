package uwimg

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

type Frame struct {
	Image *Image
	Delay time.Duration
}

// Animation is a sequence of fully composed frames, all of the same size.
type Animation struct {
	Frames    []*Frame
	LoopCount uint // 0 means loop forever, 1 means loop once, ...
}

type disposal int

const (
	dispose_none disposal = iota
	dispose_background
	dispose_previous
)

type raw_frame struct {
	img      image.Image
	x, y     int
	delay    time.Duration
	replace  bool
	disposal disposal
}

// coalesce composes partial frames onto a canvas the size of the animation,
// so that every output frame is a snapshot of the animation at that instant.
func coalesce(width, height int, frames []raw_frame) ([]*Frame, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	ans := make([]*Frame, 0, len(frames))
	has_alpha := false
	for _, f := range frames {
		b := f.img.Bounds()
		dest := image.Rect(f.x, f.y, f.x+b.Dx(), f.y+b.Dy())
		var previous *image.NRGBA
		if f.disposal == dispose_previous {
			previous = image.NewNRGBA(canvas.Rect)
			copy(previous.Pix, canvas.Pix)
		}
		op := draw.Over
		if f.replace {
			op = draw.Src
		}
		draw.Draw(canvas, dest, f.img, b.Min, op)
		im, err := FromImage(canvas)
		if err != nil {
			return nil, err
		}
		has_alpha = has_alpha || im.C == 4
		ans = append(ans, &Frame{Image: im, Delay: f.delay})
		switch f.disposal {
		case dispose_background:
			draw.Draw(canvas, dest, image.Transparent, image.Point{}, draw.Src)
		case dispose_previous:
			canvas = previous
		}
	}
	if has_alpha {
		for _, f := range ans {
			f.Image = with_alpha(f.Image)
		}
	}
	return ans, nil
}

// with_alpha returns im with an opaque alpha channel appended if it has
// only color channels.
func with_alpha(im *Image) *Image {
	if im.C != 3 {
		return im
	}
	ans := NewImage(im.W, im.H, 4)
	copy(ans.Data, im.Data)
	alpha := ans.Channel(3)
	for i := range alpha {
		alpha[i] = 1
	}
	return ans
}

func apng_disposal(op byte) disposal {
	switch op {
	case apng.DISPOSE_OP_BACKGROUND:
		return dispose_background
	case apng.DISPOSE_OP_PREVIOUS:
		return dispose_previous
	}
	return dispose_none
}

func gif_disposal(op byte) disposal {
	switch op {
	case gif.DisposalBackground:
		return dispose_background
	case gif.DisposalPrevious:
		return dispose_previous
	}
	return dispose_none
}

func decode_apng(r io.Reader) (*Animation, error) {
	p, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	var frames []raw_frame
	var default_image image.Image
	for _, f := range p.Frames {
		if f.IsDefault {
			default_image = f.Image
			continue
		}
		frames = append(frames, raw_frame{
			img: f.Image, x: f.XOffset, y: f.YOffset,
			delay:    time.Duration(float64(time.Second) * f.GetDelay()),
			replace:  f.BlendOp == apng.BLEND_OP_SOURCE,
			disposal: apng_disposal(f.DisposeOp),
		})
	}
	if len(frames) == 0 {
		if default_image == nil {
			return nil, fmt.Errorf("%w: PNG with no frames", ErrUnsupportedFormat)
		}
		frames = append(frames, raw_frame{img: default_image, replace: true})
	}
	b := frames[0].img.Bounds()
	if default_image != nil {
		b = default_image.Bounds()
	}
	ans := &Animation{LoopCount: p.LoopCount}
	if ans.Frames, err = coalesce(b.Dx(), b.Dy(), frames); err != nil {
		return nil, err
	}
	return ans, nil
}

func decode_gif(r io.Reader) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	frames := make([]raw_frame, len(g.Image))
	for i, img := range g.Image {
		b := img.Bounds()
		frames[i] = raw_frame{
			img: img, x: b.Min.X, y: b.Min.Y,
			delay:    time.Duration(g.Delay[i]) * 10 * time.Millisecond,
			disposal: gif_disposal(g.Disposal[i]),
		}
	}
	ans := &Animation{}
	switch {
	case g.LoopCount == 0:
		ans.LoopCount = 0
	case g.LoopCount < 0:
		ans.LoopCount = 1
	default:
		ans.LoopCount = uint(g.LoopCount) + 1
	}
	if ans.Frames, err = coalesce(g.Config.Width, g.Config.Height, frames); err != nil {
		return nil, err
	}
	return ans, nil
}

// DecodeAnimation reads every frame of an animated PNG or GIF from r. Other
// image formats produce a single frame animation.
func DecodeAnimation(r io.Reader, opts ...DecodeOption) (*Animation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	var ans *Animation
	switch name {
	case "png", "apng":
		ans, err = decode_apng(bytes.NewReader(data))
	case "gif":
		ans, err = decode_gif(bytes.NewReader(data))
	default:
		cfg := defaultDecodeConfig
		for _, option := range opts {
			option(&cfg)
		}
		var im *Image
		if im, err = decode_bytes(data, &cfg); err == nil {
			ans = &Animation{Frames: []*Frame{{Image: im}}}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return ans, nil
}

// LoadAnimation loads every frame of an animated image from file.
func LoadAnimation(filename string, opts ...DecodeOption) (*Animation, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()
	ans, err := DecodeAnimation(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, nil
}

// LoadFrames loads every frame of an animated image from file, discarding
// timing information.
func LoadFrames(filename string) ([]*Image, error) {
	a, err := LoadAnimation(filename)
	if err != nil {
		return nil, err
	}
	ans := make([]*Image, len(a.Frames))
	for i, f := range a.Frames {
		ans[i] = f.Image
	}
	return ans, nil
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()
	bestNum, bestDen := uint16(0), uint16(1)
	bestError := math.Abs(val)

	// continued fraction convergents, stopping once either term leaves uint16
	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0
	f := val
	for range 100 {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		if e := math.Abs(val - float64(h[2])/float64(k[2])); e < bestError {
			bestError, bestNum, bestDen = e, uint16(h[2]), uint16(k[2])
		}
		if f-float64(a) == 0.0 {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return bestNum, bestDen
}

// EncodeAsPNG writes the animation to w as an animated PNG.
func (self *Animation) EncodeAsPNG(w io.Writer) error {
	if len(self.Frames) == 0 {
		return fmt.Errorf("%w: animation has no frames", ErrInvalidDimensions)
	}
	first := self.Frames[0].Image
	a := apng.APNG{LoopCount: self.LoopCount}
	for _, f := range self.Frames {
		if f.Image.W != first.W || f.Image.H != first.H {
			return fmt.Errorf("%w: frame of size %dx%d in a %dx%d animation", ErrShapeMismatch, f.Image.W, f.Image.H, first.W, first.H)
		}
		img, err := f.Image.ToImage()
		if err != nil {
			return err
		}
		d := apng.Frame{Image: img, DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE}
		d.DelayNumerator, d.DelayDenominator = as_fraction(f.Delay)
		a.Frames = append(a.Frames, d)
	}
	if err := apng.Encode(w, a); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Save writes the animation to filename as an animated PNG.
func (self *Animation) Save(filename string) (err error) {
	file, err := fs.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	err = self.EncodeAsPNG(file)
	if errc := file.Close(); err == nil && errc != nil {
		err = fmt.Errorf("%w: %w", ErrIO, errc)
	}
	return err
}

// SaveAnimation writes frames to filename as an animated PNG that loops
// forever, showing each frame for delay.
func SaveAnimation(frames []*Image, filename string, delay time.Duration) error {
	a := Animation{Frames: make([]*Frame, len(frames))}
	for i, im := range frames {
		a.Frames[i] = &Frame{Image: im, Delay: delay}
	}
	return a.Save(filename)
}
