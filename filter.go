package uwimg

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// Filters are ordinary images, usually a single channel and an odd size so
// that they have a well defined centre.

// L1Normalize divides every sample by the sum of its channel, in place, so
// that each channel sums to 1. Channels that sum to zero are left unchanged.
func L1Normalize(im *Image) {
	for c := range im.C {
		ch := im.Channel(c)
		var sum float64
		for _, v := range ch {
			sum += float64(v)
		}
		if sum == 0 {
			continue
		}
		for i, v := range ch {
			ch[i] = float32(float64(v) / sum)
		}
	}
}

// BoxFilter returns a size x size filter whose weights are all equal and sum to 1.
func BoxFilter(size int) (*Image, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: box filter size %d", ErrInvalidDimensions, size)
	}
	f := NewImage(size, size, 1)
	for i := range f.Data {
		f.Data[i] = 1
	}
	L1Normalize(f)
	return f, nil
}

func fixed3x3(weights ...float32) *Image {
	f := NewImage(3, 3, 1)
	copy(f.Data, weights)
	return f
}

// HighpassFilter returns a 3x3 filter that keeps only the high frequency
// (edge) content of an image.
func HighpassFilter() *Image {
	return fixed3x3(
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	)
}

// SharpenFilter returns a 3x3 filter that sharpens an image.
func SharpenFilter() *Image {
	return fixed3x3(
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	)
}

// EmbossFilter returns a 3x3 filter that gives an image an embossed look.
func EmbossFilter() *Image {
	return fixed3x3(
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	)
}

// GxFilter returns the horizontal Sobel filter.
func GxFilter() *Image {
	return fixed3x3(
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	)
}

// GyFilter returns the vertical Sobel filter.
func GyFilter() *Image {
	return fixed3x3(
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	)
}

// max_gaussian_size bounds the side of Gaussian kernels, far beyond any
// kernel that fits in a real image.
const max_gaussian_size = 1 << 14

func check_sigma(sigma float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 0) || math.Ceil(sigma*6) > max_gaussian_size {
		return fmt.Errorf("%w: gaussian sigma %v", ErrInvalidDimensions, sigma)
	}
	return nil
}

// gaussian_size is the smallest odd integer >= 6*sigma, which covers 99% of
// the mass of the distribution.
func gaussian_size(sigma float64) int {
	size := int(math.Ceil(sigma * 6))
	if size%2 == 0 {
		size++
	}
	return size
}

// GaussianFilter returns a square filter sampling a 2D Gaussian with standard
// deviation sigma, normalized so its weights sum to 1.
func GaussianFilter(sigma float64) (*Image, error) {
	if err := check_sigma(sigma); err != nil {
		return nil, err
	}
	size := gaussian_size(sigma)
	center := size / 2
	f := NewImage(size, size, 1)
	twoss := 2 * sigma * sigma
	for y := range size {
		for x := range size {
			dx, dy := float64(x-center), float64(y-center)
			f.Data[x+y*size] = float32(math.Exp(-(dx*dx+dy*dy)/twoss) / (math.Pi * twoss))
		}
	}
	L1Normalize(f)
	return f, nil
}

// Gaussian1D returns a single row filter sampling a 1D Gaussian with standard
// deviation sigma, normalized so its weights sum to 1. Convolving with it and
// then with its transpose is equivalent to convolving with GaussianFilter.
func Gaussian1D(sigma float64) (*Image, error) {
	if err := check_sigma(sigma); err != nil {
		return nil, err
	}
	size := gaussian_size(sigma)
	center := size / 2
	f := NewImage(size, 1, 1)
	for x := range size {
		d := float64(x - center)
		f.Data[x] = float32(math.Exp(-d * d / (2 * sigma * sigma)))
	}
	L1Normalize(f)
	return f, nil
}
