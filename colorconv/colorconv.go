package colorconv

import (
	"math"
)

// This package converts single colors between RGB, HSV and luma. All
// components are float32 values nominally in [0,1]; hue is expressed as a
// fraction of a full turn, so 0 and 1 are both red.

// Rec. 601 luma weights
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luma returns the perceptual intensity of an RGB color.
func Luma(r, g, b float32) float32 {
	return LumaR*r + LumaG*g + LumaB*b
}

// RGBToHSV converts an RGB color to hue, saturation and value. Gray colors
// (including black) have zero hue and saturation.
func RGBToHSV(r, g, b float32) (h, s, v float32) {
	v = max(r, g, b)
	chroma := v - min(r, g, b)
	if v > 0 {
		s = chroma / v
	}
	if chroma == 0 {
		return 0, s, v
	}
	var hh float32
	switch v {
	case r:
		hh = (g - b) / chroma
	case g:
		hh = (b-r)/chroma + 2
	default:
		hh = (r-g)/chroma + 4
	}
	h = hh / 6
	if h < 0 {
		h++
	}
	return
}

// HSVToRGB converts hue, saturation and value to an RGB color. Hue wraps, so
// values outside [0,1) are reduced modulo 1.
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	h -= float32(math.Floor(float64(h)))
	chroma := s * v
	m := v - chroma
	hh := h * 6
	x := chroma * (1 - float32(math.Abs(math.Mod(float64(hh), 2)-1)))
	switch {
	case hh < 1:
		r, g, b = chroma, x, 0
	case hh < 2:
		r, g, b = x, chroma, 0
	case hh < 3:
		r, g, b = 0, chroma, x
	case hh < 4:
		r, g, b = 0, x, chroma
	case hh < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return r + m, g + m, b + m
}

// HueFromAngle maps an angle in radians, as returned by math.Atan2, onto a
// hue in [0,1). An angle of -π is hue 0 and the hue increases
// counter-clockwise.
func HueFromAngle(theta float64) float32 {
	h := (theta + math.Pi) / (2 * math.Pi)
	h -= math.Floor(h)
	return float32(h)
}
