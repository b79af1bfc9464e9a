package uwimg

import (
	"fmt"
	"math"

	"github.com/uwimg/uwimg/colorconv"
	"golang.org/x/sync/errgroup"
)

var _ = fmt.Print

// Sobel estimates the image gradient of im with the Sobel operator. It returns
// two single channel images: the gradient magnitude and the gradient
// direction in radians, in (-π, π]. Multi-channel images are summed across
// channels before the gradient is taken.
func Sobel(im *Image) (magnitude, direction *Image, err error) {
	var gx, gy *Image
	var g errgroup.Group
	g.Go(func() (err error) {
		gx, err = Convolve(im, GxFilter(), false)
		return
	})
	g.Go(func() (err error) {
		gy, err = Convolve(im, GyFilter(), false)
		return
	})
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}
	magnitude, direction = NewImage(im.W, im.H, 1), NewImage(im.W, im.H, 1)
	for i, x := range gx.Data {
		y := gy.Data[i]
		magnitude.Data[i] = float32(math.Sqrt(float64(x*x + y*y)))
		direction.Data[i] = float32(math.Atan2(float64(y), float64(x)))
	}
	return
}

// ColorizeSobel returns a three channel RGB visualization of the gradient of
// im. The hue encodes the gradient direction and both saturation and value
// encode the gradient magnitude, normalized to [0, 1] over the image.
func ColorizeSobel(im *Image) (*Image, error) {
	mag, dir, err := Sobel(im)
	if err != nil {
		return nil, err
	}
	FeatureNormalize(mag)
	ans := NewImage(im.W, im.H, 3)
	h, s, v := ans.Channel(0), ans.Channel(1), ans.Channel(2)
	for i, m := range mag.Data {
		h[i] = colorconv.HueFromAngle(float64(dir.Data[i]))
		s[i], v[i] = m, m
	}
	if err = HSVToRGB(ans); err != nil {
		return nil, err
	}
	return ans, nil
}
