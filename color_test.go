package uwimg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestGrayscale(t *testing.T) {
	im := NewImage(2, 1, 3)
	// red, white
	copy(im.Data, []float32{1, 1, 0, 1, 0, 1})
	g, err := Grayscale(im)
	require.NoError(t, err)
	require.Equal(t, 1, g.C)
	require.InDelta(t, 0.299, g.Data[0], 1e-6)
	require.InDelta(t, 1, g.Data[1], 1e-6)

	_, err = Grayscale(NewImage(2, 2, 1))
	require.ErrorIs(t, err, ErrShapeMismatch)
	_, err = Grayscale(NewImage(2, 2, 4))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestHSVRoundTrip(t *testing.T) {
	im := pattern_image(19, 11, 3)
	orig := im.Clone()
	require.NoError(t, RGBToHSV(im))
	require.NotEqual(t, orig.Fingerprint(), im.Fingerprint())
	lo, hi := im.MinMax()
	require.GreaterOrEqual(t, lo, float32(0))
	require.LessOrEqual(t, hi, float32(1))
	require.NoError(t, HSVToRGB(im))
	require_close(t, orig, im, 1e-5)
}

func TestHSVKeepsAlpha(t *testing.T) {
	im := pattern_image(5, 5, 4)
	alpha := append([]float32(nil), im.Channel(3)...)
	require.NoError(t, RGBToHSV(im))
	require.Equal(t, alpha, im.Channel(3))
	require.ErrorIs(t, HSVToRGB(NewImage(3, 3, 2)), ErrShapeMismatch)
}
