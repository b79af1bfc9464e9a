package uwimg

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// source_coord maps the centre of output pixel i onto the source axis when
// resizing from src_size to dst_size samples.
func source_coord(i, src_size, dst_size int) float32 {
	return (float32(i)+0.5)*float32(src_size)/float32(dst_size) - 0.5
}

// NearestInterpolate returns the value of the source pixel closest to the
// fractional location (x, y) in channel c.
func NearestInterpolate(im *Image, x, y float32, c int) float32 {
	return im.Get(int(math.Round(float64(x))), int(math.Round(float64(y))), c)
}

// BilinearInterpolate returns the value at the fractional location (x, y) in
// channel c, interpolated from the four surrounding pixels. Locations outside
// the image use the nearest edge pixels.
func BilinearInterpolate(im *Image, x, y float32, c int) float32 {
	fx, fy := float32(math.Floor(float64(x))), float32(math.Floor(float64(y)))
	x0, y0 := int(fx), int(fy)
	dx, dy := x-fx, y-fy
	top := (1-dx)*im.Get(x0, y0, c) + dx*im.Get(x0+1, y0, c)
	bottom := (1-dx)*im.Get(x0, y0+1, c) + dx*im.Get(x0+1, y0+1, c)
	return (1-dy)*top + dy*bottom
}

func resize(im *Image, w, h int, interpolate func(*Image, float32, float32, int) float32) (*Image, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: cannot resize to %dx%d", ErrInvalidDimensions, w, h)
	}
	if im.W < 1 || im.H < 1 {
		return nil, fmt.Errorf("%w: cannot resize an empty image", ErrInvalidDimensions)
	}
	ans := NewImage(w, h, im.C)
	xs := make([]float32, w)
	for x := range xs {
		xs[x] = source_coord(x, im.W, w)
	}
	err := run_rows(h, func(start, limit int) {
		for c := range im.C {
			out := ans.Channel(c)
			for y := start; y < limit; y++ {
				sy := source_coord(y, im.H, h)
				row := out[y*w : (y+1)*w]
				for x, sx := range xs {
					row[x] = interpolate(im, sx, sy, c)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}

// NearestResize returns a w x h copy of im where every output pixel takes the
// value of the nearest source pixel.
func NearestResize(im *Image, w, h int) (*Image, error) {
	return resize(im, w, h, NearestInterpolate)
}

// BilinearResize returns a w x h copy of im where every output pixel is
// bilinearly interpolated from its four nearest source pixels.
func BilinearResize(im *Image, w, h int) (*Image, error) {
	return resize(im, w, h, BilinearInterpolate)
}
