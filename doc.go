/*
Package uwimg provides basic image processing functions over floating point
pixel buffers (resize, convolution, filter construction, image arithmetic,
gradients, color space conversion and corner detection).

Images are stored channel-major as float32 samples. Most functions accept an
*Image and return a newly allocated *Image; the few that modify their argument
in place say so in their documentation. Pixel values are not clamped to [0, 1]
unless Clamp or FeatureNormalize is applied, or the image is encoded.
*/
package uwimg

import "fmt"

type UwimgVersion struct {
	Major, Minor, Patch uint
}

func (v UwimgVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v UwimgVersion) Equal(o UwimgVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v UwimgVersion) After(o UwimgVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v UwimgVersion) Before(o UwimgVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = UwimgVersion{0, 2, 0}
