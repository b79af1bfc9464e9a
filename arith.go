package uwimg

import (
	"fmt"
)

var _ = fmt.Print

func elementwise(a, b *Image, op func(x, y float32) float32) (*Image, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%w: %dx%dx%d and %dx%dx%d", ErrShapeMismatch, a.W, a.H, a.C, b.W, b.H, b.C)
	}
	ans := NewImage(a.W, a.H, a.C)
	// every channel row is independent
	err := run_rows(a.H*a.C, func(start, limit int) {
		for i := start * a.W; i < limit*a.W; i++ {
			ans.Data[i] = op(a.Data[i], b.Data[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}

// Add returns the elementwise sum a + b. The images must have the same shape.
func Add(a, b *Image) (*Image, error) {
	return elementwise(a, b, func(x, y float32) float32 { return x + y })
}

// Subtract returns the elementwise difference a - b. The images must have the
// same shape.
func Subtract(a, b *Image) (*Image, error) {
	return elementwise(a, b, func(x, y float32) float32 { return x - y })
}

// Shift adds v to every sample of channel c, in place.
func Shift(im *Image, c int, v float32) error {
	if c < 0 || c >= im.C {
		return fmt.Errorf("%w: channel %d of a %d channel image", ErrShapeMismatch, c, im.C)
	}
	ch := im.Channel(c)
	for i := range ch {
		ch[i] += v
	}
	return nil
}

// Scale multiplies every sample of channel c by v, in place.
func Scale(im *Image, c int, v float32) error {
	if c < 0 || c >= im.C {
		return fmt.Errorf("%w: channel %d of a %d channel image", ErrShapeMismatch, c, im.C)
	}
	ch := im.Channel(c)
	for i := range ch {
		ch[i] *= v
	}
	return nil
}

// Clamp limits every sample to [0, 1], in place.
func Clamp(im *Image) {
	for i, v := range im.Data {
		im.Data[i] = clamp01(v)
	}
}

// FeatureNormalize linearly rescales im in place so that its smallest sample
// becomes 0 and its largest 1. An image whose samples are all equal becomes
// all zeros.
func FeatureNormalize(im *Image) {
	lo, hi := im.MinMax()
	r := hi - lo
	for i, v := range im.Data {
		if r == 0 {
			im.Data[i] = 0
		} else {
			im.Data[i] = (v - lo) / r
		}
	}
}
