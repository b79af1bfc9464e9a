package uwimg

import (
	"fmt"

	"github.com/uwimg/uwimg/colorconv"
)

var _ = fmt.Print

func need_rgb(im *Image) error {
	if im.C < 3 {
		return fmt.Errorf("%w: need an RGB image, got %d channels", ErrShapeMismatch, im.C)
	}
	return nil
}

// map_rgb replaces the first three channels of every pixel with f(r, g, b).
func map_rgb(im *Image, f func(a, b, c float32) (float32, float32, float32)) error {
	if err := need_rgb(im); err != nil {
		return err
	}
	r, g, b := im.Channel(0), im.Channel(1), im.Channel(2)
	return run_rows(im.H, func(start, limit int) {
		for i := start * im.W; i < limit*im.W; i++ {
			r[i], g[i], b[i] = f(r[i], g[i], b[i])
		}
	})
}

// Grayscale returns a single channel image holding the luma of the RGB image im.
func Grayscale(im *Image) (*Image, error) {
	if im.C != 3 {
		return nil, fmt.Errorf("%w: grayscale conversion needs 3 channels, got %d", ErrShapeMismatch, im.C)
	}
	ans := NewImage(im.W, im.H, 1)
	r, g, b, out := im.Channel(0), im.Channel(1), im.Channel(2), ans.Channel(0)
	for i := range out {
		out[i] = colorconv.Luma(r[i], g[i], b[i])
	}
	return ans, nil
}

// RGBToHSV converts the first three channels of im from RGB to HSV, in place.
func RGBToHSV(im *Image) error {
	return map_rgb(im, colorconv.RGBToHSV)
}

// HSVToRGB converts the first three channels of im from HSV to RGB, in place.
func HSVToRGB(im *Image) error {
	return map_rgb(im, colorconv.HSVToRGB)
}
