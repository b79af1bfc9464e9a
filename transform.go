package uwimg

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified = 0
	orientationNormal      = 1
	orientationFlipH       = 2
	orientationRotate180   = 3
	orientationFlipV       = 4
	orientationTranspose   = 5
	orientationRotate270   = 6
	orientationTransverse  = 7
	orientationRotate90    = 8
)

// fixOrientation applies a transform to im corresponding to the given orientation flag.
func fixOrientation(im *Image, o orientation) *Image {
	switch o {
	case orientationFlipH:
		return FlipH(im)
	case orientationFlipV:
		return FlipV(im)
	case orientationRotate90:
		return Rotate90(im)
	case orientationRotate180:
		return Rotate180(im)
	case orientationRotate270:
		return Rotate270(im)
	case orientationTranspose:
		return Transpose(im)
	case orientationTransverse:
		return Transverse(im)
	}
	return im
}

// remap builds a w x h image whose pixel (x, y) is the source pixel src(x, y).
func remap(im *Image, w, h int, src func(x, y int) (int, int)) *Image {
	ans := NewImage(w, h, im.C)
	_ = run_rows(h, func(start, limit int) {
		for c := range im.C {
			in, out := im.Channel(c), ans.Channel(c)
			for y := start; y < limit; y++ {
				for x := range w {
					sx, sy := src(x, y)
					out[x+y*w] = in[sx+sy*im.W]
				}
			}
		}
	})
	return ans
}

// FlipH flips the image horizontally (left to right).
func FlipH(im *Image) *Image {
	return remap(im, im.W, im.H, func(x, y int) (int, int) { return im.W - 1 - x, y })
}

// FlipV flips the image vertically (top to bottom).
func FlipV(im *Image) *Image {
	return remap(im, im.W, im.H, func(x, y int) (int, int) { return x, im.H - 1 - y })
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(im *Image) *Image {
	return remap(im, im.H, im.W, func(x, y int) (int, int) { return im.W - 1 - y, x })
}

// Rotate180 rotates the image 180 degrees.
func Rotate180(im *Image) *Image {
	return remap(im, im.W, im.H, func(x, y int) (int, int) { return im.W - 1 - x, im.H - 1 - y })
}

// Rotate270 rotates the image 270 degrees counter-clockwise.
func Rotate270(im *Image) *Image {
	return remap(im, im.H, im.W, func(x, y int) (int, int) { return y, im.H - 1 - x })
}

// Transpose flips the image horizontally and rotates 90 degrees counter-clockwise.
func Transpose(im *Image) *Image {
	return remap(im, im.H, im.W, func(x, y int) (int, int) { return y, x })
}

// Transverse flips the image vertically and rotates 90 degrees counter-clockwise.
func Transverse(im *Image) *Image {
	return remap(im, im.H, im.W, func(x, y int) (int, int) { return im.W - 1 - y, im.H - 1 - x })
}
