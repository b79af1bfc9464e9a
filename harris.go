package uwimg

import (
	"fmt"
	"image"
)

var _ = fmt.Print

const (
	// harris_alpha weights the trace term of the cornerness response
	harris_alpha = 0.06
	// suppressed is the response given to pixels removed by NMS
	suppressed = -999999
	// descriptor_size is the side of the square neighbourhood a Descriptor samples
	descriptor_size = 5
)

// Descriptor describes the neighbourhood of a feature point.
type Descriptor struct {
	P    image.Point
	Data []float32
}

// SmoothImage blurs im with a Gaussian of standard deviation sigma, using two
// one dimensional passes. The result has as many channels as im.
func SmoothImage(im *Image, sigma float64) (*Image, error) {
	row, err := Gaussian1D(sigma)
	if err != nil {
		return nil, err
	}
	col := &Image{W: 1, H: row.W, C: 1, Data: row.Data}
	if row.W > im.W || row.W > im.H {
		return nil, fmt.Errorf("%w: gaussian of sigma %v needs at least %dx%d pixels", ErrDimensionMismatch, sigma, row.W, row.W)
	}
	tmp, err := Convolve(im, row, true)
	if err != nil {
		return nil, err
	}
	return Convolve(tmp, col, true)
}

// StructureMatrix returns the Gaussian weighted structure matrix of im. The
// three channels of the result are Ix², Iy² and IxIy.
func StructureMatrix(im *Image, sigma float64) (*Image, error) {
	ix, err := Convolve(im, GxFilter(), false)
	if err != nil {
		return nil, err
	}
	iy, err := Convolve(im, GyFilter(), false)
	if err != nil {
		return nil, err
	}
	S := NewImage(im.W, im.H, 3)
	xx, yy, xy := S.Channel(0), S.Channel(1), S.Channel(2)
	for i, x := range ix.Data {
		y := iy.Data[i]
		xx[i], yy[i], xy[i] = x*x, y*y, x*y
	}
	return SmoothImage(S, sigma)
}

// CornernessResponse computes det(S) - alpha * trace(S)² for every pixel of
// the structure matrix S.
func CornernessResponse(S *Image) (*Image, error) {
	if S.C != 3 {
		return nil, fmt.Errorf("%w: structure matrix needs 3 channels, got %d", ErrShapeMismatch, S.C)
	}
	R := NewImage(S.W, S.H, 1)
	xx, yy, xy := S.Channel(0), S.Channel(1), S.Channel(2)
	for i := range R.Data {
		det := xx[i]*yy[i] - xy[i]*xy[i]
		tr := xx[i] + yy[i]
		R.Data[i] = det - harris_alpha*tr*tr
	}
	return R, nil
}

// NMS performs non-maximum suppression on the single channel response image
// im: every pixel with a strictly larger neighbour within w pixels is set to
// a very low value.
func NMS(im *Image, w int) *Image {
	r := im.Clone()
	for y := range im.H {
		for x := range im.W {
			v := im.Get(x, y, 0)
		neighbours:
			for dy := -w; dy <= w; dy++ {
				for dx := -w; dx <= w; dx++ {
					if im.Get(x+dx, y+dy, 0) > v {
						r.Set(x, y, 0, suppressed)
						break neighbours
					}
				}
			}
		}
	}
	return r
}

// DescribeIndex returns a descriptor for the pixel at linear index i of im:
// the 5x5 neighbourhood of every channel with the centre value subtracted,
// which compensates somewhat for exposure changes.
func DescribeIndex(im *Image, i int) Descriptor {
	x, y := i%im.W, i/im.W
	d := Descriptor{P: image.Pt(x, y), Data: make([]float32, 0, descriptor_size*descriptor_size*im.C)}
	for c := range im.C {
		cval := im.Data[c*im.W*im.H+i]
		for dx := -descriptor_size / 2; dx < (descriptor_size+1)/2; dx++ {
			for dy := -descriptor_size / 2; dy < (descriptor_size+1)/2; dy++ {
				d.Data = append(d.Data, cval-im.Get(x+dx, y+dy, c))
			}
		}
	}
	return d
}

// HarrisCornerDetector finds corners in im and returns a descriptor for each.
// sigma is the standard deviation of the structure matrix weighting, thresh
// the minimum cornerness response and nms the radius of non-maximum
// suppression.
func HarrisCornerDetector(im *Image, sigma float64, thresh float32, nms int) ([]Descriptor, error) {
	S, err := StructureMatrix(im, sigma)
	if err != nil {
		return nil, err
	}
	R, err := CornernessResponse(S)
	if err != nil {
		return nil, err
	}
	R = NMS(R, nms)
	var ans []Descriptor
	for i, v := range R.Data {
		if v >= thresh {
			ans = append(ans, DescribeIndex(im, i))
		}
	}
	return ans, nil
}

// MarkSpot draws a cross centred on p into im, in place.
func MarkSpot(im *Image, p image.Point) {
	for i := -9; i < 10; i++ {
		for c, v := range [3]float32{1, 0, 1} {
			im.Set(p.X+i, p.Y, c, v)
			im.Set(p.X, p.Y+i, c, v)
		}
	}
}

// MarkCorners draws a cross at the location of every descriptor, in place.
func MarkCorners(im *Image, d []Descriptor) {
	for _, x := range d {
		MarkSpot(im, x.P)
	}
}

// DetectAndDrawCorners runs HarrisCornerDetector on im and marks the corners
// found in im, in place. It returns the number of corners found.
func DetectAndDrawCorners(im *Image, sigma float64, thresh float32, nms int) (int, error) {
	d, err := HarrisCornerDetector(im, sigma, thresh, nms)
	if err != nil {
		return 0, err
	}
	MarkCorners(im, d)
	return len(d), nil
}
