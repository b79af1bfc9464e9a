package uwimg

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

// pattern_image returns a deterministic, non constant w x h x c image with
// samples that are exact multiples of 1/16.
func pattern_image(w, h, c int) *Image {
	im := NewImage(w, h, c)
	for ch := range c {
		for y := range h {
			for x := range w {
				im.Set(x, y, ch, float32((x*7+y*13+ch*29)%17)/16)
			}
		}
	}
	return im
}

func constant_image(w, h, c int, v float32) *Image {
	im := NewImage(w, h, c)
	for i := range im.Data {
		im.Data[i] = v
	}
	return im
}

func max_abs_diff(t *testing.T, a, b *Image) float64 {
	t.Helper()
	require.True(t, a.SameShape(b), "%s != %s", a, b)
	var ans float64
	for i, v := range a.Data {
		ans = max(ans, math.Abs(float64(v-b.Data[i])))
	}
	return ans
}

func require_close(t *testing.T, a, b *Image, tolerance float64) {
	t.Helper()
	d := max_abs_diff(t, a, b)
	require.LessOrEqual(t, d, tolerance, "images differ by %v", d)
}

func TestPixelAccess(t *testing.T) {
	im := pattern_image(4, 3, 2)
	require.Equal(t, 4*3*2, len(im.Data))
	require.Equal(t, im.Data[1+4*2+4*3*1], im.Get(1, 2, 1))
	// clamp to edge
	require.Equal(t, im.Get(0, 0, 0), im.Get(-5, -1, 0))
	require.Equal(t, im.Get(3, 2, 1), im.Get(10, 10, 1))
	require.Equal(t, im.Get(2, 1, 1), im.Get(2, 1, 7))

	before := im.Fingerprint()
	im.Set(-1, 0, 0, 42)
	im.Set(4, 0, 0, 42)
	im.Set(0, 3, 0, 42)
	im.Set(0, 0, 2, 42)
	require.Equal(t, before, im.Fingerprint(), "out of bounds writes must be ignored")
	im.Set(3, 2, 1, 42)
	require.Equal(t, float32(42), im.Get(3, 2, 1))
}

func TestCloneAndFingerprint(t *testing.T) {
	a := pattern_image(5, 5, 3)
	b := a.Clone()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Data[7] += 1
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Data[7], b.Data[7])
	// same samples, different shape
	c := &Image{W: 15, H: 5, C: 1, Data: a.Data}
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestNewImageChecked(t *testing.T) {
	_, err := NewImageChecked(0, 3, 1)
	require.ErrorIs(t, err, ErrInvalidDimensions)
	im, err := NewImageChecked(2, 3, 1)
	require.NoError(t, err)
	require.Equal(t, 6, len(im.Data))
}

func TestMinMax(t *testing.T) {
	im := pattern_image(6, 6, 1)
	im.Data[3] = -2
	im.Data[9] = 5
	lo, hi := im.MinMax()
	require.Equal(t, float32(-2), lo)
	require.Equal(t, float32(5), hi)
}

func TestStandardImageConversion(t *testing.T) {
	for _, nc := range []int{1, 3, 4} {
		t.Run(fmt.Sprintf("%d channels", nc), func(t *testing.T) {
			t.Parallel()
			im := pattern_image(7, 5, nc)
			if nc == 4 {
				// keep at least one pixel translucent so the round trip keeps alpha
				im.Set(0, 0, 3, 0.5)
			}
			std, err := im.ToImage()
			require.NoError(t, err)
			switch nc {
			case 1:
				require.IsType(t, &image.Gray{}, std)
			case 3:
				require.IsType(t, &image.RGBA{}, std)
				require.True(t, std.(*image.RGBA).Opaque())
			case 4:
				require.IsType(t, &image.NRGBA{}, std)
			}
			back, err := FromImage(std)
			require.NoError(t, err)
			require_close(t, im, back, 0.5/255+1e-6)
		})
	}
	_, err := NewImage(2, 2, 2).ToImage()
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFromImageGeneric(t *testing.T) {
	src := image.NewRGBA64(image.Rect(3, 4, 6, 6))
	for y := 4; y < 6; y++ {
		for x := 3; x < 6; x++ {
			src.Set(x, y, color.RGBA64{R: 0xffff, G: uint16(x * 1000), B: uint16(y * 1000), A: 0xffff})
		}
	}
	im, err := FromImage(src)
	require.NoError(t, err)
	require.Equal(t, 3, im.W)
	require.Equal(t, 2, im.H)
	require.Equal(t, 3, im.C)
	require.Equal(t, float32(1), im.Get(0, 0, 0))
	require.InDelta(t, 3000.0/0xffff, im.Get(0, 0, 1), 1e-6)
	require.InDelta(t, 5000.0/0xffff, im.Get(2, 1, 2), 1e-6)
}

func TestToImageClamps(t *testing.T) {
	im := NewImage(2, 1, 1)
	im.Data[0], im.Data[1] = -3, 7
	std, err := im.ToImage()
	require.NoError(t, err)
	g := std.(*image.Gray)
	require.Equal(t, []uint8{0, 255}, g.Pix)
}

func TestImageInterface(t *testing.T) {
	var img image.Image = pattern_image(3, 2, 3)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	c := img.At(1, 1).(color.NRGBA64)
	require.Equal(t, uint16(0xffff), c.A)
	rv := float32((7+13)%17)/16*0xffff + 0.5
	require.Equal(t, uint16(rv), c.R)
	require.Equal(t, color.NRGBA64{}, img.At(3, 0))

	gray := constant_image(1, 1, 1, 2)
	require.Equal(t, color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}, gray.At(0, 0))

	// any image.Image converts back
	back, err := FromImage(pattern_image(3, 2, 4))
	require.NoError(t, err)
	require_close(t, pattern_image(3, 2, 4), back, 1e-4)
}

func TestFromPremultiplied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 0x80, G: 0x40, B: 0, A: 0x80})
	src.SetRGBA(1, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	im, err := FromImage(src)
	require.NoError(t, err)
	require.Equal(t, 4, im.C)
	require.InDelta(t, 1, im.Get(0, 0, 0), 1e-3)
	require.InDelta(t, 0.5, im.Get(0, 0, 1), 1e-2)
	require.InDelta(t, 0x80/255., im.Get(0, 0, 3), 1e-3)
	require.Equal(t, float32(1), im.Get(1, 0, 3))
}
