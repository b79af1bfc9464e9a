package uwimg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestRotations(t *testing.T) {
	// 0 1 2
	// 3 4 5
	im := NewImage(3, 2, 1)
	copy(im.Data, []float32{0, 1, 2, 3, 4, 5})
	testCases := []struct {
		name string
		f    func(*Image) *Image
		w, h int
		want []float32
	}{
		{"FlipH", FlipH, 3, 2, []float32{2, 1, 0, 5, 4, 3}},
		{"FlipV", FlipV, 3, 2, []float32{3, 4, 5, 0, 1, 2}},
		{"Rotate90", Rotate90, 2, 3, []float32{2, 5, 1, 4, 0, 3}},
		{"Rotate180", Rotate180, 3, 2, []float32{5, 4, 3, 2, 1, 0}},
		{"Rotate270", Rotate270, 2, 3, []float32{3, 0, 4, 1, 5, 2}},
		{"Transpose", Transpose, 2, 3, []float32{0, 3, 1, 4, 2, 5}},
		{"Transverse", Transverse, 2, 3, []float32{5, 2, 4, 1, 3, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ans := tc.f(im)
			require.Equal(t, tc.w, ans.W)
			require.Equal(t, tc.h, ans.H)
			require.Equal(t, tc.want, ans.Data)
		})
	}
}

func TestRotationIdentities(t *testing.T) {
	im := pattern_image(7, 4, 3)
	fp := im.Fingerprint()
	r := im
	for range 4 {
		r = Rotate90(r)
	}
	require.Equal(t, fp, r.Fingerprint())
	require.Equal(t, fp, Transpose(Transpose(im)).Fingerprint())
	require.Equal(t, fp, Rotate270(Rotate90(im)).Fingerprint())
	require.Equal(t, Rotate180(im).Fingerprint(), FlipV(FlipH(im)).Fingerprint())
	require.Equal(t, Transverse(im).Fingerprint(), Rotate90(FlipV(im)).Fingerprint())
}

func TestFixOrientation(t *testing.T) {
	im := pattern_image(5, 3, 3)
	require.Same(t, im, fixOrientation(im, orientationUnspecified))
	require.Same(t, im, fixOrientation(im, orientationNormal))
	for o, f := range map[orientation]func(*Image) *Image{
		orientationFlipH: FlipH, orientationFlipV: FlipV, orientationRotate90: Rotate90,
		orientationRotate180: Rotate180, orientationRotate270: Rotate270,
		orientationTranspose: Transpose, orientationTransverse: Transverse,
	} {
		require.Equal(t, f(im).Fingerprint(), fixOrientation(im, o).Fingerprint(), "orientation: %d", o)
	}
}
