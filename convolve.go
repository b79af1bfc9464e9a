package uwimg

import (
	"fmt"
)

var _ = fmt.Print

// Convolve applies filter to im. Pixels beyond the edges of im take the value
// of the nearest edge pixel.
//
// filter must have either one channel or as many channels as im. When
// preserve is true the result has as many channels as im and each channel is
// filtered independently (by the matching filter channel if filter has more
// than one). When preserve is false the filtered channels are summed into a
// single channel result.
func Convolve(im, filter *Image, preserve bool) (*Image, error) {
	if filter.C != 1 && filter.C != im.C {
		return nil, fmt.Errorf("%w: a %d channel filter cannot be applied to a %d channel image", ErrShapeMismatch, filter.C, im.C)
	}
	if filter.W > im.W || filter.H > im.H {
		return nil, fmt.Errorf("%w: %dx%d filter, %dx%d image", ErrDimensionMismatch, filter.W, filter.H, im.W, im.H)
	}
	if filter.W < 1 || filter.H < 1 {
		return nil, fmt.Errorf("%w: empty filter", ErrInvalidDimensions)
	}
	nc := 1
	if preserve {
		nc = im.C
	}
	ans := NewImage(im.W, im.H, nc)
	cx, cy := filter.W/2, filter.H/2
	// source column for every (output column, filter column) pair
	cols := make([]int, im.W*filter.W)
	for x := range im.W {
		for fx := range filter.W {
			cols[x*filter.W+fx] = clamp_index(x+fx-cx, im.W)
		}
	}
	err := run_rows(im.H, func(start, limit int) {
		for c := range im.C {
			in := im.Channel(c)
			weights := filter.Channel(min(c, filter.C-1))
			out := ans.Channel(min(c, nc-1))
			for y := start; y < limit; y++ {
				row := out[y*im.W : (y+1)*im.W]
				for fy := range filter.H {
					src := in[clamp_index(y+fy-cy, im.H)*im.W:]
					frow := weights[fy*filter.W : (fy+1)*filter.W]
					for x := range row {
						xs := cols[x*filter.W : (x+1)*filter.W]
						var sum float32
						for fx, w := range frow {
							sum += w * src[xs[fx]]
						}
						row[x] += sum
					}
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}
